package travel

import (
	"context"
	"errors"

	"travelbook/models"
)

// The methods below serve read-only listing from a single projected
// itinerary. What they return is a detached copy: never feed it back into
// a write, go through the aggregate instead.

func (e *Editor) GetItinerary(ctx context.Context, travelID, twinID, itineraryID string) (*models.Itinerary, error) {
	return e.projectItinerary(ctx, twinID, travelID, itineraryID)
}

func (e *Editor) ListBookings(ctx context.Context, travelID, twinID, itineraryID string) ([]models.Booking, error) {
	it, err := e.projectItinerary(ctx, twinID, travelID, itineraryID)
	if err != nil {
		return nil, err
	}
	return it.Bookings, nil
}

func (e *Editor) GetBooking(ctx context.Context, travelID, twinID, itineraryID, bookingID string) (*models.Booking, error) {
	it, err := e.projectItinerary(ctx, twinID, travelID, itineraryID)
	if err != nil {
		return nil, err
	}
	i := it.BookingIndex(bookingID)
	if i < 0 {
		return nil, notFound(EntityBooking, bookingID)
	}
	return &it.Bookings[i], nil
}

func (e *Editor) ListActivities(ctx context.Context, travelID, twinID, itineraryID string) ([]models.DailyActivity, error) {
	it, err := e.projectItinerary(ctx, twinID, travelID, itineraryID)
	if err != nil {
		return nil, err
	}
	return it.Activities, nil
}

func (e *Editor) GetActivity(ctx context.Context, travelID, twinID, itineraryID, activityID string) (*models.DailyActivity, error) {
	it, err := e.projectItinerary(ctx, twinID, travelID, itineraryID)
	if err != nil {
		return nil, err
	}
	i := it.ActivityIndex(activityID)
	if i < 0 {
		return nil, notFound(EntityActivity, activityID)
	}
	return &it.Activities[i], nil
}

func (e *Editor) projectItinerary(ctx context.Context, twinID, travelID, itineraryID string) (*models.Itinerary, error) {
	if e.agg.cache != nil {
		if it, ok := e.agg.cache.GetItinerary(ctx, twinID, travelID, itineraryID); ok {
			it.Normalize()
			return it, nil
		}
	}

	sctx, cancel := context.WithTimeout(ctx, e.agg.opts.StoreTimeout)
	defer cancel()
	it, rev, err := e.agg.store.GetItinerary(sctx, twinID, travelID, itineraryID)
	if errors.Is(err, ErrNoDocument) {
		return nil, notFound(EntityTravel, travelID)
	}
	if err != nil {
		return nil, classify("read itinerary", err)
	}
	if it == nil {
		return nil, notFound(EntityItinerary, itineraryID)
	}
	it.Normalize()

	if e.agg.cache != nil {
		e.agg.cache.SetItinerary(ctx, twinID, travelID, rev, it)
	}
	return it, nil
}
