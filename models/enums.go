package models

import (
	"fmt"
	"strings"
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type TravelType string

const (
	TravelVacation  TravelType = "vacation"
	TravelBusiness  TravelType = "business"
	TravelFamily    TravelType = "family"
	TravelAdventure TravelType = "adventure"
	TravelCultural  TravelType = "cultural"
	TravelOther     TravelType = "other"
)

var travelTypes = []TravelType{TravelVacation, TravelBusiness, TravelFamily, TravelAdventure, TravelCultural, TravelOther}

type TravelStatus string

const (
	StatusPlanning   TravelStatus = "planning"
	StatusConfirmed  TravelStatus = "confirmed"
	StatusInProgress TravelStatus = "in-progress"
	StatusCompleted  TravelStatus = "completed"
	StatusCancelled  TravelStatus = "cancelled"
)

var travelStatuses = []TravelStatus{StatusPlanning, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}

type BookingType string

const (
	BookingFlight   BookingType = "flight"
	BookingHotel    BookingType = "hotel"
	BookingCar      BookingType = "car"
	BookingActivity BookingType = "activity"
	BookingOther    BookingType = "other"
)

var bookingTypes = []BookingType{BookingFlight, BookingHotel, BookingCar, BookingActivity, BookingOther}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

var bookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}

type TransportMode string

const (
	TransportPlane   TransportMode = "plane"
	TransportTrain   TransportMode = "train"
	TransportCar     TransportMode = "car"
	TransportBus     TransportMode = "bus"
	TransportShip    TransportMode = "ship"
	TransportBicycle TransportMode = "bicycle"
	TransportWalking TransportMode = "walking"
	TransportOther   TransportMode = "other"
)

var transportModes = []TransportMode{TransportPlane, TransportTrain, TransportCar, TransportBus, TransportShip, TransportBicycle, TransportWalking, TransportOther}

type AccommodationType string

const (
	AccommodationHotel     AccommodationType = "hotel"
	AccommodationHostel    AccommodationType = "hostel"
	AccommodationApartment AccommodationType = "apartment"
	AccommodationHouse     AccommodationType = "house"
	AccommodationCamping   AccommodationType = "camping"
	AccommodationResort    AccommodationType = "resort"
	AccommodationOther     AccommodationType = "other"
)

var accommodationTypes = []AccommodationType{AccommodationHotel, AccommodationHostel, AccommodationApartment, AccommodationHouse, AccommodationCamping, AccommodationResort, AccommodationOther}

type ActivityType string

const (
	ActivitySightseeing   ActivityType = "sightseeing"
	ActivityDining        ActivityType = "dining"
	ActivityTour          ActivityType = "tour"
	ActivityMuseum        ActivityType = "museum"
	ActivityOutdoor       ActivityType = "outdoor"
	ActivityShopping      ActivityType = "shopping"
	ActivityEntertainment ActivityType = "entertainment"
	ActivityTransport     ActivityType = "transport"
	ActivityRelaxation    ActivityType = "relaxation"
	ActivityMeeting       ActivityType = "meeting"
	ActivityOther         ActivityType = "other"
)

var activityTypes = []ActivityType{ActivitySightseeing, ActivityDining, ActivityTour, ActivityMuseum, ActivityOutdoor, ActivityShopping, ActivityEntertainment, ActivityTransport, ActivityRelaxation, ActivityMeeting, ActivityOther}

// parseEnum lowercases and trims raw and accepts it only if it names one of allowed.
func parseEnum[T ~string](field, raw string, allowed []T) (T, error) {
	v := T(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", invalid(field, "%q is not one of %s", raw, strings.Join(names, ", "))
}

func ParseTravelType(s string) (TravelType, error) {
	return parseEnum("travelType", s, travelTypes)
}

func ParseTravelStatus(s string) (TravelStatus, error) {
	return parseEnum("status", s, travelStatuses)
}

func ParseBookingType(s string) (BookingType, error) {
	return parseEnum("type", s, bookingTypes)
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	return parseEnum("status", s, bookingStatuses)
}

func ParseTransportMode(s string) (TransportMode, error) {
	return parseEnum("transportMode", s, transportModes)
}

func ParseAccommodationType(s string) (AccommodationType, error) {
	return parseEnum("accommodationType", s, accommodationTypes)
}

func ParseActivityType(s string) (ActivityType, error) {
	return parseEnum("activityType", s, activityTypes)
}
