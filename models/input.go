package models

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// Inputs carry client fields for creation. Patches carry partial updates:
// a nil pointer means the field was absent and must not be touched. Optional
// fields that can be cleared use Nullable, where an explicit null clears.

type TravelInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Country        string   `json:"destinationCountry"`
	City           string   `json:"destinationCity"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	Budget         float64  `json:"budget"`
	Currency       string   `json:"currency"`
	Type           string   `json:"travelType"`
	Status         string   `json:"status"`
	Transportation string   `json:"transportation"`
	Lodging        string   `json:"lodging"`
	Companions     string   `json:"companions"`
	Activities     string   `json:"activities"`
	Notes          string   `json:"notes"`
	Rating         *int     `json:"rating"`
	Highlights     []string `json:"highlights"`
}

type TravelPatch struct {
	Title          *string       `json:"title"`
	Description    *string       `json:"description"`
	Country        *string       `json:"destinationCountry"`
	City           *string       `json:"destinationCity"`
	StartDate      *string       `json:"startDate"`
	EndDate        *string       `json:"endDate"`
	Budget         *float64      `json:"budget"`
	Currency       *string       `json:"currency"`
	Type           *string       `json:"travelType"`
	Status         *string       `json:"status"`
	Transportation *string       `json:"transportation"`
	Lodging        *string       `json:"lodging"`
	Companions     *string       `json:"companions"`
	Activities     *string       `json:"activities"`
	Notes          *string       `json:"notes"`
	Rating         Nullable[int] `json:"rating"`
	Highlights     *[]string     `json:"highlights"`
}

type ItineraryInput struct {
	Title              string  `json:"title"`
	OriginCity         string  `json:"originCity"`
	OriginCountry      string  `json:"originCountry"`
	DestinationCity    string  `json:"destinationCity"`
	DestinationCountry string  `json:"destinationCountry"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	Transport          string  `json:"transportMode"`
	Accommodation      string  `json:"accommodationType"`
	EstimatedBudget    float64 `json:"estimatedBudget"`
	Currency           string  `json:"currency"`
	Notes              string  `json:"notes"`
}

type ItineraryPatch struct {
	Title              *string  `json:"title"`
	OriginCity         *string  `json:"originCity"`
	OriginCountry      *string  `json:"originCountry"`
	DestinationCity    *string  `json:"destinationCity"`
	DestinationCountry *string  `json:"destinationCountry"`
	StartDate          *string  `json:"startDate"`
	EndDate            *string  `json:"endDate"`
	Transport          *string  `json:"transportMode"`
	Accommodation      *string  `json:"accommodationType"`
	EstimatedBudget    *float64 `json:"estimatedBudget"`
	Currency           *string  `json:"currency"`
	Notes              *string  `json:"notes"`
}

type BookingInput struct {
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Provider     string   `json:"provider"`
	Contact      *Contact `json:"contact"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Confirmation string   `json:"confirmationNumber"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
}

type BookingPatch struct {
	Type         *string           `json:"type"`
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	StartDate    *string           `json:"startDate"`
	EndDate      *string           `json:"endDate"`
	StartTime    *string           `json:"startTime"`
	EndTime      *string           `json:"endTime"`
	Provider     *string           `json:"provider"`
	Contact      Nullable[Contact] `json:"contact"`
	Price        *float64          `json:"price"`
	Currency     *string           `json:"currency"`
	Confirmation *string           `json:"confirmationNumber"`
	Status       *string           `json:"status"`
	Notes        *string           `json:"notes"`
}

type ActivityInput struct {
	Date         string       `json:"date"`
	StartTime    string       `json:"startTime"`
	EndTime      string       `json:"endTime"`
	Type         string       `json:"activityType"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Participants []string     `json:"participants"`
	Rating       *int         `json:"rating"`
	Notes        string       `json:"notes"`
	Cost         float64      `json:"cost"`
	Currency     string       `json:"currency"`
	Coordinates  *Coordinates `json:"coordinates"`
}

type ActivityPatch struct {
	Date         *string               `json:"date"`
	StartTime    *string               `json:"startTime"`
	EndTime      *string               `json:"endTime"`
	Type         *string               `json:"activityType"`
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	Location     *string               `json:"location"`
	Participants *[]string             `json:"participants"`
	Rating       Nullable[int]         `json:"rating"`
	Notes        *string               `json:"notes"`
	Cost         *float64              `json:"cost"`
	Currency     *string               `json:"currency"`
	Coordinates  Nullable[Coordinates] `json:"coordinates"`
}

var (
	currencyPattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// NormalizeCurrency uppercases a currency code and defaults it to USD.
func NormalizeCurrency(field, raw string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(raw))
	if c == "" {
		return DefaultCurrency, nil
	}
	if !currencyPattern.MatchString(c) {
		return "", invalid(field, "%q is not a 3-letter currency code", raw)
	}
	return c, nil
}

func checkDate(field, s string, required bool) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if required {
			return "", invalid(field, "is required")
		}
		return "", nil
	}
	d, ok := ParseDate(s)
	if !ok {
		return "", invalid(field, "%q is not a YYYY-MM-DD date", s)
	}
	return d.Format(DateLayout), nil
}

func checkTimeOfDay(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || timeOfDayPattern.MatchString(s) {
		return s, nil
	}
	return "", invalid(field, "%q is not an HH:MM time", s)
}

func checkRating(field string, r *int) error {
	if r != nil && (*r < 1 || *r > 5) {
		return invalid(field, "must be between 1 and 5")
	}
	return nil
}

func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

func checkCoordinates(c *Coordinates) error {
	if c == nil {
		return nil
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return invalid("coordinates.latitude", "must be between -90 and 90")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return invalid("coordinates.longitude", "must be between -180 and 180")
	}
	return nil
}

func checkOrder(startField, start, end string) error {
	if start == "" || end == "" {
		return nil
	}
	if ComputeDuration(start, end) == nil {
		return invalid(startField, "end date %s precedes start date %s", end, start)
	}
	return nil
}

// NewTravel validates in and builds a fresh travel with no itineraries.
func NewTravel(id, twinID string, in TravelInput, now time.Time) (*Travel, error) {
	if strings.TrimSpace(twinID) == "" {
		return nil, invalid("twinId", "is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title", "is required")
	}
	t := &Travel{
		ID:             id,
		TwinID:         twinID,
		DocumentType:   DocumentTypeTravel,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Country:        in.Country,
		City:           in.City,
		Budget:         in.Budget,
		Transportation: in.Transportation,
		Lodging:        in.Lodging,
		Companions:     in.Companions,
		Activities:     in.Activities,
		Notes:          in.Notes,
		Rating:         in.Rating,
		Highlights:     in.Highlights,
		CreatedAt:      now,
		UpdatedAt:      now,
		Itineraries:    []Itinerary{},
	}
	var err error
	if t.StartDate, err = checkDate("startDate", in.StartDate, false); err != nil {
		return nil, err
	}
	if t.EndDate, err = checkDate("endDate", in.EndDate, false); err != nil {
		return nil, err
	}
	if t.Currency, err = NormalizeCurrency("currency", in.Currency); err != nil {
		return nil, err
	}
	if err := checkAmount("budget", in.Budget); err != nil {
		return nil, err
	}
	if err := checkRating("rating", in.Rating); err != nil {
		return nil, err
	}
	t.Type = TravelOther
	if in.Type != "" {
		if t.Type, err = ParseTravelType(in.Type); err != nil {
			return nil, err
		}
	}
	t.Status = StatusPlanning
	if in.Status != "" {
		if t.Status, err = ParseTravelStatus(in.Status); err != nil {
			return nil, err
		}
	}
	t.StatusMirror = t.Status
	t.DurationDays = ComputeDuration(t.StartDate, t.EndDate)
	t.Normalize()
	return t, nil
}

// Apply merges the present fields of p into t and recomputes the duration
// from the merged dates. It reports whether any field mirrored by
// itinerary snapshots changed. t is left untouched when validation fails.
func (p TravelPatch) Apply(t *Travel) (bool, error) {
	next := *t
	var err error
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return false, invalid("title", "must not be empty")
		}
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Country != nil {
		next.Country = *p.Country
	}
	if p.City != nil {
		next.City = *p.City
	}
	if p.StartDate != nil {
		if next.StartDate, err = checkDate("startDate", *p.StartDate, false); err != nil {
			return false, err
		}
	}
	if p.EndDate != nil {
		if next.EndDate, err = checkDate("endDate", *p.EndDate, false); err != nil {
			return false, err
		}
	}
	if p.Budget != nil {
		if err := checkAmount("budget", *p.Budget); err != nil {
			return false, err
		}
		next.Budget = *p.Budget
	}
	if p.Currency != nil {
		if next.Currency, err = NormalizeCurrency("currency", *p.Currency); err != nil {
			return false, err
		}
	}
	if p.Type != nil {
		if next.Type, err = ParseTravelType(*p.Type); err != nil {
			return false, err
		}
	}
	if p.Status != nil {
		if next.Status, err = ParseTravelStatus(*p.Status); err != nil {
			return false, err
		}
	}
	if p.Transportation != nil {
		next.Transportation = *p.Transportation
	}
	if p.Lodging != nil {
		next.Lodging = *p.Lodging
	}
	if p.Companions != nil {
		next.Companions = *p.Companions
	}
	if p.Activities != nil {
		next.Activities = *p.Activities
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if p.Rating.Set {
		if err := checkRating("rating", p.Rating.Value); err != nil {
			return false, err
		}
		next.Rating = p.Rating.copyValue()
	}
	if p.Highlights != nil {
		next.Highlights = append([]string{}, (*p.Highlights)...)
	}
	next.StatusMirror = next.Status
	next.DurationDays = ComputeDuration(next.StartDate, next.EndDate)

	changed := next.Snapshot() != t.Snapshot()
	*t = next
	return changed, nil
}

func NewItinerary(id string, in ItineraryInput, parent TravelSnapshot, now time.Time) (*Itinerary, error) {
	it := &Itinerary{
		ID:                 id,
		Title:              in.Title,
		OriginCity:         in.OriginCity,
		OriginCountry:      in.OriginCountry,
		DestinationCity:    in.DestinationCity,
		DestinationCountry: in.DestinationCountry,
		EstimatedBudget:    in.EstimatedBudget,
		Notes:              in.Notes,
		Travel:             parent,
		Bookings:           []Booking{},
		Activities:         []DailyActivity{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	var err error
	if it.StartDate, err = checkDate("startDate", in.StartDate, false); err != nil {
		return nil, err
	}
	if it.EndDate, err = checkDate("endDate", in.EndDate, false); err != nil {
		return nil, err
	}
	if err := checkOrder("startDate", it.StartDate, it.EndDate); err != nil {
		return nil, err
	}
	if err := checkAmount("estimatedBudget", in.EstimatedBudget); err != nil {
		return nil, err
	}
	if it.Currency, err = NormalizeCurrency("currency", in.Currency); err != nil {
		return nil, err
	}
	if in.Transport != "" {
		if it.Transport, err = ParseTransportMode(in.Transport); err != nil {
			return nil, err
		}
	}
	if in.Accommodation != "" {
		if it.Accommodation, err = ParseAccommodationType(in.Accommodation); err != nil {
			return nil, err
		}
	}
	return it, nil
}

func (p ItineraryPatch) Apply(it *Itinerary) error {
	next := *it
	var err error
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.OriginCity != nil {
		next.OriginCity = *p.OriginCity
	}
	if p.OriginCountry != nil {
		next.OriginCountry = *p.OriginCountry
	}
	if p.DestinationCity != nil {
		next.DestinationCity = *p.DestinationCity
	}
	if p.DestinationCountry != nil {
		next.DestinationCountry = *p.DestinationCountry
	}
	if p.StartDate != nil {
		if next.StartDate, err = checkDate("startDate", *p.StartDate, false); err != nil {
			return err
		}
	}
	if p.EndDate != nil {
		if next.EndDate, err = checkDate("endDate", *p.EndDate, false); err != nil {
			return err
		}
	}
	if err := checkOrder("startDate", next.StartDate, next.EndDate); err != nil {
		return err
	}
	if p.Transport != nil {
		if next.Transport, err = ParseTransportMode(*p.Transport); err != nil {
			return err
		}
	}
	if p.Accommodation != nil {
		if next.Accommodation, err = ParseAccommodationType(*p.Accommodation); err != nil {
			return err
		}
	}
	if p.EstimatedBudget != nil {
		if err := checkAmount("estimatedBudget", *p.EstimatedBudget); err != nil {
			return err
		}
		next.EstimatedBudget = *p.EstimatedBudget
	}
	if p.Currency != nil {
		if next.Currency, err = NormalizeCurrency("currency", *p.Currency); err != nil {
			return err
		}
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	*it = next
	return nil
}

func NewBooking(id string, in BookingInput, now time.Time) (*Booking, error) {
	b := &Booking{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Provider:     in.Provider,
		Contact:      in.Contact,
		Price:        in.Price,
		Confirmation: in.Confirmation,
		Notes:        in.Notes,
		Status:       BookingPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var err error
	if strings.TrimSpace(in.Type) == "" {
		return nil, invalid("type", "is required")
	}
	if b.Type, err = ParseBookingType(in.Type); err != nil {
		return nil, err
	}
	if b.StartDate, err = checkDate("startDate", in.StartDate, true); err != nil {
		return nil, err
	}
	if b.EndDate, err = checkDate("endDate", in.EndDate, false); err != nil {
		return nil, err
	}
	if err := checkOrder("startDate", b.StartDate, b.EndDate); err != nil {
		return nil, err
	}
	if b.StartTime, err = checkTimeOfDay("startTime", in.StartTime); err != nil {
		return nil, err
	}
	if b.EndTime, err = checkTimeOfDay("endTime", in.EndTime); err != nil {
		return nil, err
	}
	if err := checkAmount("price", in.Price); err != nil {
		return nil, err
	}
	if b.Currency, err = NormalizeCurrency("currency", in.Currency); err != nil {
		return nil, err
	}
	if in.Status != "" {
		if b.Status, err = ParseBookingStatus(in.Status); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (p BookingPatch) Apply(b *Booking) error {
	next := *b
	var err error
	if p.Type != nil {
		if next.Type, err = ParseBookingType(*p.Type); err != nil {
			return err
		}
	}
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.StartDate != nil {
		if next.StartDate, err = checkDate("startDate", *p.StartDate, true); err != nil {
			return err
		}
	}
	if p.EndDate != nil {
		if next.EndDate, err = checkDate("endDate", *p.EndDate, false); err != nil {
			return err
		}
	}
	if err := checkOrder("startDate", next.StartDate, next.EndDate); err != nil {
		return err
	}
	if p.StartTime != nil {
		if next.StartTime, err = checkTimeOfDay("startTime", *p.StartTime); err != nil {
			return err
		}
	}
	if p.EndTime != nil {
		if next.EndTime, err = checkTimeOfDay("endTime", *p.EndTime); err != nil {
			return err
		}
	}
	if p.Provider != nil {
		next.Provider = *p.Provider
	}
	if p.Contact.Set {
		next.Contact = p.Contact.copyValue()
	}
	if p.Price != nil {
		if err := checkAmount("price", *p.Price); err != nil {
			return err
		}
		next.Price = *p.Price
	}
	if p.Currency != nil {
		if next.Currency, err = NormalizeCurrency("currency", *p.Currency); err != nil {
			return err
		}
	}
	if p.Confirmation != nil {
		next.Confirmation = *p.Confirmation
	}
	if p.Status != nil {
		if next.Status, err = ParseBookingStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	*b = next
	return nil
}

func NewDailyActivity(id string, in ActivityInput, now time.Time) (*DailyActivity, error) {
	a := &DailyActivity{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		Participants: in.Participants,
		Rating:       in.Rating,
		Notes:        in.Notes,
		Cost:         in.Cost,
		Coordinates:  in.Coordinates,
		Type:         ActivityOther,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if a.Participants == nil {
		a.Participants = []string{}
	}
	var err error
	if a.Date, err = checkDate("date", in.Date, true); err != nil {
		return nil, err
	}
	if a.StartTime, err = checkTimeOfDay("startTime", in.StartTime); err != nil {
		return nil, err
	}
	if a.EndTime, err = checkTimeOfDay("endTime", in.EndTime); err != nil {
		return nil, err
	}
	if in.Type != "" {
		if a.Type, err = ParseActivityType(in.Type); err != nil {
			return nil, err
		}
	}
	if err := checkRating("rating", in.Rating); err != nil {
		return nil, err
	}
	if err := checkAmount("cost", in.Cost); err != nil {
		return nil, err
	}
	if a.Currency, err = NormalizeCurrency("currency", in.Currency); err != nil {
		return nil, err
	}
	if err := checkCoordinates(in.Coordinates); err != nil {
		return nil, err
	}
	return a, nil
}

func (p ActivityPatch) Apply(a *DailyActivity) error {
	next := *a
	var err error
	if p.Date != nil {
		if next.Date, err = checkDate("date", *p.Date, true); err != nil {
			return err
		}
	}
	if p.StartTime != nil {
		if next.StartTime, err = checkTimeOfDay("startTime", *p.StartTime); err != nil {
			return err
		}
	}
	if p.EndTime != nil {
		if next.EndTime, err = checkTimeOfDay("endTime", *p.EndTime); err != nil {
			return err
		}
	}
	if p.Type != nil {
		if next.Type, err = ParseActivityType(*p.Type); err != nil {
			return err
		}
	}
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Location != nil {
		next.Location = *p.Location
	}
	if p.Participants != nil {
		next.Participants = append([]string{}, (*p.Participants)...)
	}
	if p.Rating.Set {
		if err := checkRating("rating", p.Rating.Value); err != nil {
			return err
		}
		next.Rating = p.Rating.copyValue()
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if p.Cost != nil {
		if err := checkAmount("cost", *p.Cost); err != nil {
			return err
		}
		next.Cost = *p.Cost
	}
	if p.Currency != nil {
		if next.Currency, err = NormalizeCurrency("currency", *p.Currency); err != nil {
			return err
		}
	}
	if p.Coordinates.Set {
		if err := checkCoordinates(p.Coordinates.Value); err != nil {
			return err
		}
		next.Coordinates = p.Coordinates.copyValue()
	}
	*a = next
	return nil
}
