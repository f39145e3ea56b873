package models

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNewTravelDefaults(t *testing.T) {
	tr, err := NewTravel("t1", "twin", TravelInput{Title: "  Rome  "}, now)
	require.NoError(t, err)
	assert.Equal(t, "Rome", tr.Title)
	assert.Equal(t, TravelOther, tr.Type)
	assert.Equal(t, StatusPlanning, tr.Status)
	assert.Equal(t, StatusPlanning, tr.StatusMirror)
	assert.Equal(t, DefaultCurrency, tr.Currency)
	assert.Equal(t, DocumentTypeTravel, tr.DocumentType)
	assert.Nil(t, tr.DurationDays)
	assert.NotNil(t, tr.Highlights)
	assert.NotNil(t, tr.Itineraries)
}

func TestNewTravelRequiresTwinAndTitle(t *testing.T) {
	_, err := NewTravel("t1", "", TravelInput{Title: "x"}, now)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "twinId", ve.Field)

	_, err = NewTravel("t1", "twin", TravelInput{Title: "   "}, now)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestEnumParsingFailsLoudly(t *testing.T) {
	s, err := ParseTravelStatus("In-Progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseTravelStatus("done")
	assert.Error(t, err)
	_, err = ParseBookingType("spaceship")
	assert.Error(t, err)
	_, err = ParseTransportMode("teleport")
	assert.Error(t, err)
}

func TestTravelPatchReportsSnapshotChanges(t *testing.T) {
	tr, err := NewTravel("t1", "twin", TravelInput{Title: "Rome"}, now)
	require.NoError(t, err)

	changed, err := TravelPatch{Notes: strp("pizza")}.Apply(tr)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "pizza", tr.Notes)

	changed, err = TravelPatch{Status: strp("confirmed")}.Apply(tr)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusConfirmed, tr.StatusMirror)
}

func TestPatchIsAllOrNothing(t *testing.T) {
	b, err := NewBooking("b1", BookingInput{Type: "hotel", StartDate: "2024-05-01", Price: 100}, now)
	require.NoError(t, err)

	err = BookingPatch{Price: floatp(250), EndDate: strp("2024-04-01")}.Apply(b)
	assert.Error(t, err)
	assert.Equal(t, 100.0, b.Price)
	assert.Empty(t, b.EndDate)

	err = BookingPatch{Price: floatp(250), StartTime: strp("09:30")}.Apply(b)
	require.NoError(t, err)
	assert.Equal(t, 250.0, b.Price)
	assert.Equal(t, "09:30", b.StartTime)
}

func TestNewBookingValidation(t *testing.T) {
	_, err := NewBooking("b1", BookingInput{StartDate: "2024-05-01"}, now)
	assert.Error(t, err, "type is required")

	_, err = NewBooking("b1", BookingInput{Type: "flight"}, now)
	assert.Error(t, err, "start date is required")

	b, err := NewBooking("b1", BookingInput{Type: "Flight", StartDate: "2024-05-01", Currency: "gbp"}, now)
	require.NoError(t, err)
	assert.Equal(t, BookingFlight, b.Type)
	assert.Equal(t, BookingPending, b.Status)
	assert.Equal(t, "GBP", b.Currency)
}

func TestNewDailyActivityValidation(t *testing.T) {
	_, err := NewDailyActivity("a1", ActivityInput{}, now)
	assert.Error(t, err)

	_, err = NewDailyActivity("a1", ActivityInput{Date: "2024-05-01", Coordinates: &Coordinates{Latitude: 91}}, now)
	assert.Error(t, err)

	a, err := NewDailyActivity("a1", ActivityInput{Date: "2024-05-01"}, now)
	require.NoError(t, err)
	assert.Equal(t, ActivityOther, a.Type)
	assert.NotNil(t, a.Participants)
}

func TestAmountsMustBeFinite(t *testing.T) {
	_, err := NewBooking("b1", BookingInput{Type: "hotel", StartDate: "2024-05-01", Price: math.NaN()}, now)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "price", ve.Field)

	_, err = NewTravel("t1", "twin", TravelInput{Title: "x", Budget: math.Inf(1)}, now)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "budget", ve.Field)
}

func strp(v string) *string     { return &v }
func floatp(v float64) *float64 { return &v }
