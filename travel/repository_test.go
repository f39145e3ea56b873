package travel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelbook/models"
)

func TestCreateAndGetRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := models.TravelInput{
		Title:       "Lisbon",
		Description: "Long weekend",
		Country:     "Portugal",
		City:        "Lisbon",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-07",
		Budget:      1200,
		Currency:    "eur",
		Type:        "vacation",
		Rating:      intPtr(4),
		Highlights:  []string{"Alfama", "Belem"},
	}
	created, err := f.repo.Create(ctx, twin, in)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(1), created.Revision)
	assert.Equal(t, "EUR", created.Currency)
	assert.Equal(t, models.TravelVacation, created.Type)
	assert.Equal(t, models.StatusPlanning, created.Status)
	require.NotNil(t, created.DurationDays)
	assert.Equal(t, 7, *created.DurationDays)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	assert.Empty(t, created.Itineraries)

	got, err := f.repo.Get(ctx, created.ID, twin)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Country, got.Country)
	assert.Equal(t, created.City, got.City)
	assert.Equal(t, created.StartDate, got.StartDate)
	assert.Equal(t, created.EndDate, got.EndDate)
	assert.Equal(t, created.Budget, got.Budget)
	assert.Equal(t, created.Rating, got.Rating)
	assert.Equal(t, created.Highlights, got.Highlights)
	assert.Equal(t, created.DurationDays, got.DurationDays)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]models.TravelInput{
		"missing title":  {},
		"unknown status": {Title: "x", Status: "someday"},
		"bad date":       {Title: "x", StartDate: "06/01/2024"},
		"bad rating":     {Title: "x", Rating: intPtr(9)},
		"bad currency":   {Title: "x", Currency: "euro"},
		"negative money": {Title: "x", Budget: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.repo.Create(ctx, twin, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGetIsScopedToTwin(t *testing.T) {
	f := newFixture(t)
	tr := f.create(t, models.TravelInput{Title: "Rome"})

	_, err := f.repo.Get(context.Background(), tr.ID, "someone-else")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, NotFoundIn(err, EntityTravel))
}

func TestUpdateOnlyTouchesPresentFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tr := f.create(t, models.TravelInput{Title: "Rome", Country: "Italy", StartDate: "2024-03-01", EndDate: "2024-03-03", Budget: 900})

	patch := models.TravelPatch{Notes: strPtr("bring umbrella")}
	first, err := f.repo.Update(ctx, tr.ID, twin, patch)
	require.NoError(t, err)
	second, err := f.repo.Update(ctx, tr.ID, twin, patch)
	require.NoError(t, err)

	assert.Equal(t, "bring umbrella", second.Notes)
	assert.Equal(t, "Italy", second.Country)
	assert.Equal(t, 900.0, second.Budget)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, int64(3), second.Revision)

	first.UpdatedAt, second.UpdatedAt = first.CreatedAt, first.CreatedAt
	first.Revision, second.Revision = 0, 0
	assert.Equal(t, first, second)
}

func TestEmptyUpdateOnlyMovesUpdatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tr := f.create(t, models.TravelInput{Title: "Oslo", StartDate: "2024-02-01", EndDate: "2024-02-02"})
	before, err := f.repo.Get(ctx, tr.ID, twin)
	require.NoError(t, err)

	after, err := f.repo.Update(ctx, tr.ID, twin, models.TravelPatch{})
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	after.UpdatedAt, after.Revision = before.UpdatedAt, before.Revision
	assert.Equal(t, before, after)
}

func TestUpdateRecomputesDuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tr := f.create(t, models.TravelInput{Title: "Kyoto", StartDate: "2024-04-01", EndDate: "2024-04-05"})
	require.Equal(t, 5, *tr.DurationDays)

	updated, err := f.repo.Update(ctx, tr.ID, twin, models.TravelPatch{EndDate: strPtr("2024-04-10")})
	require.NoError(t, err)
	assert.Equal(t, 10, *updated.DurationDays)

	updated, err = f.repo.Update(ctx, tr.ID, twin, models.TravelPatch{EndDate: strPtr("2024-03-01")})
	require.NoError(t, err)
	assert.Nil(t, updated.DurationDays)
}

func TestUpdateValidationLeavesStoredTravelUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tr := f.create(t, models.TravelInput{Title: "Cairo"})

	_, err := f.repo.Update(ctx, tr.ID, twin, models.TravelPatch{Title: strPtr("Giza"), Status: strPtr("maybe")})
	require.ErrorIs(t, err, ErrValidation)

	got, err := f.repo.Get(ctx, tr.ID, twin)
	require.NoError(t, err)
	assert.Equal(t, "Cairo", got.Title)
	assert.Equal(t, int64(1), got.Revision)
}

func TestUpdateRefreshesItinerarySnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tr := f.create(t, models.TravelInput{Title: "Peru"})
	res, err := f.editor.AddItinerary(ctx, tr.ID, twin, models.ItineraryInput{Title: "Cusco"})
	require.NoError(t, err)
	assert.Equal(t, "Peru", res.Itinerary.Travel.Title)
	assert.Equal(t, models.StatusPlanning, res.Itinerary.Travel.Status)

	_, err = f.repo.Update(ctx, tr.ID, twin, models.TravelPatch{Status: strPtr("confirmed"), Title: strPtr("Peru 2024")})
	require.NoError(t, err)

	it, err := f.editor.GetItinerary(ctx, tr.ID, twin, res.Itinerary.ID)
	require.NoError(t, err)
	assert.Equal(t, "Peru 2024", it.Travel.Title)
	assert.Equal(t, models.StatusConfirmed, it.Travel.Status)
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tr := f.create(t, models.TravelInput{Title: "Iceland"})

	var itineraryIDs []string
	for i := 0; i < 2; i++ {
		res, err := f.editor.AddItinerary(ctx, tr.ID, twin, models.ItineraryInput{Title: "leg"})
		require.NoError(t, err)
		itineraryIDs = append(itineraryIDs, res.Itinerary.ID)
		for j := 0; j < 3; j++ {
			_, err := f.editor.AddBooking(ctx, tr.ID, twin, res.Itinerary.ID, models.BookingInput{Type: "hotel", StartDate: "2024-08-01"})
			require.NoError(t, err)
			_, err = f.editor.AddActivity(ctx, tr.ID, twin, res.Itinerary.ID, models.ActivityInput{Date: "2024-08-02"})
			require.NoError(t, err)
		}
	}

	deleted, err := f.repo.Delete(ctx, tr.ID, twin)
	require.NoError(t, err)
	require.Len(t, deleted.Itineraries, 2)
	assert.Len(t, deleted.Itineraries[0].Bookings, 3)
	assert.Len(t, deleted.Itineraries[1].Activities, 3)

	_, err = f.repo.Get(ctx, tr.ID, twin)
	assert.True(t, NotFoundIn(err, EntityTravel))
	for _, id := range itineraryIDs {
		_, err := f.editor.ListBookings(ctx, tr.ID, twin, id)
		assert.True(t, NotFoundIn(err, EntityTravel))
	}

	_, err = f.repo.Delete(ctx, tr.ID, twin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParisTripScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tr, err := f.repo.Create(ctx, twin, models.TravelInput{
		Title:     "Paris Trip",
		StartDate: "2025-06-15",
		EndDate:   "2025-06-22",
		Budget:    2500,
		Currency:  "EUR",
	})
	require.NoError(t, err)
	require.NotNil(t, tr.DurationDays)
	assert.Equal(t, 8, *tr.DurationDays)

	itRes, err := f.editor.AddItinerary(ctx, tr.ID, twin, models.ItineraryInput{OriginCity: "NYC", DestinationCity: "Paris"})
	require.NoError(t, err)
	assert.Len(t, itRes.Travel.Itineraries, 1)
	itID := itRes.Itinerary.ID

	bRes, err := f.editor.AddBooking(ctx, tr.ID, twin, itID, models.BookingInput{Type: "flight", StartDate: "2025-06-15", Price: 450})
	require.NoError(t, err)

	bookings, err := f.editor.ListBookings(ctx, tr.ID, twin, itID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 450.0, bookings[0].Price)

	_, err = f.editor.DeleteBooking(ctx, tr.ID, twin, itID, bRes.Booking.ID)
	require.NoError(t, err)
	bookings, err = f.editor.ListBookings(ctx, tr.ID, twin, itID)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	_, err = f.repo.Delete(ctx, tr.ID, twin)
	require.NoError(t, err)
	_, err = f.repo.Get(ctx, tr.ID, twin)
	assert.True(t, errors.Is(err, ErrNotFound))
}
