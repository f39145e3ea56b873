package travel

import (
	"context"
	"time"

	"travelbook/logger"
	"travelbook/models"
)

type ItineraryResult struct {
	Itinerary *models.Itinerary `json:"itinerary"`
	Travel    *models.Travel    `json:"travel"`
}

type BookingResult struct {
	Booking   *models.Booking   `json:"booking"`
	Itinerary *models.Itinerary `json:"itinerary"`
}

type ActivityResult struct {
	Activity  *models.DailyActivity `json:"activity"`
	Itinerary *models.Itinerary     `json:"itinerary"`
}

// Editor mutates itineraries, bookings and daily activities. Nested
// entities have no key of their own in the store, so every edit rewrites
// the whole travel through the aggregate's conditional write.
type Editor struct {
	agg *aggregate
}

func NewEditor(store Store, cache ItineraryCache, opts Options, log *logger.Logger) *Editor {
	return &Editor{agg: &aggregate{store: store, cache: cache, opts: opts.withDefaults(), log: log}}
}

// locate returns the itinerary addressed by id inside t.
func locate(t *models.Travel, itineraryID string) (*models.Itinerary, error) {
	i := t.ItineraryIndex(itineraryID)
	if i < 0 {
		return nil, notFound(EntityItinerary, itineraryID)
	}
	return &t.Itineraries[i], nil
}

func copyItinerary(it *models.Itinerary) *models.Itinerary {
	c := *it
	c.Bookings = append([]models.Booking{}, it.Bookings...)
	c.Activities = append([]models.DailyActivity{}, it.Activities...)
	return &c
}

// ---------- Itineraries ----------

func (e *Editor) ListItineraries(ctx context.Context, travelID, twinID string) ([]models.Itinerary, error) {
	t, err := e.agg.load(ctx, travelID, twinID)
	if err != nil {
		return nil, err
	}
	return t.Itineraries, nil
}

// AddItinerary appends a new itinerary carrying a snapshot of the travel.
func (e *Editor) AddItinerary(ctx context.Context, travelID, twinID string, in models.ItineraryInput) (*ItineraryResult, error) {
	id := e.agg.opts.NewID()
	t, err := e.agg.mutate(ctx, "add itinerary", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := models.NewItinerary(id, in, t.Snapshot(), now)
		if err != nil {
			return err
		}
		t.Itineraries = append(t.Itineraries, *it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	it, err := locate(t, id)
	if err != nil {
		return nil, err
	}
	return &ItineraryResult{Itinerary: copyItinerary(it), Travel: t}, nil
}

func (e *Editor) UpdateItinerary(ctx context.Context, travelID, twinID, itineraryID string, patch models.ItineraryPatch) (*ItineraryResult, error) {
	t, err := e.agg.mutate(ctx, "update itinerary", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := locate(t, itineraryID)
		if err != nil {
			return err
		}
		if err := patch.Apply(it); err != nil {
			return err
		}
		it.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	it, err := locate(t, itineraryID)
	if err != nil {
		return nil, err
	}
	return &ItineraryResult{Itinerary: copyItinerary(it), Travel: t}, nil
}

// DeleteItinerary removes the itinerary with its bookings and activities and
// returns what was removed.
func (e *Editor) DeleteItinerary(ctx context.Context, travelID, twinID, itineraryID string) (*ItineraryResult, error) {
	var removed models.Itinerary
	t, err := e.agg.mutate(ctx, "delete itinerary", travelID, twinID, func(t *models.Travel, _ time.Time) error {
		i := t.ItineraryIndex(itineraryID)
		if i < 0 {
			return notFound(EntityItinerary, itineraryID)
		}
		removed = t.Itineraries[i]
		t.Itineraries = append(t.Itineraries[:i:i], t.Itineraries[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ItineraryResult{Itinerary: copyItinerary(&removed), Travel: t}, nil
}

// ---------- Bookings ----------

func (e *Editor) AddBooking(ctx context.Context, travelID, twinID, itineraryID string, in models.BookingInput) (*BookingResult, error) {
	id := e.agg.opts.NewID()
	t, err := e.agg.mutate(ctx, "add booking", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := locate(t, itineraryID)
		if err != nil {
			return err
		}
		b, err := models.NewBooking(id, in, now)
		if err != nil {
			return err
		}
		it.Bookings = append(it.Bookings, *b)
		it.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookingResult(t, itineraryID, id, nil)
}

func (e *Editor) UpdateBooking(ctx context.Context, travelID, twinID, itineraryID, bookingID string, patch models.BookingPatch) (*BookingResult, error) {
	t, err := e.agg.mutate(ctx, "update booking", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := locate(t, itineraryID)
		if err != nil {
			return err
		}
		i := it.BookingIndex(bookingID)
		if i < 0 {
			return notFound(EntityBooking, bookingID)
		}
		if err := patch.Apply(&it.Bookings[i]); err != nil {
			return err
		}
		it.Bookings[i].UpdatedAt = now
		it.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookingResult(t, itineraryID, bookingID, nil)
}

func (e *Editor) DeleteBooking(ctx context.Context, travelID, twinID, itineraryID, bookingID string) (*BookingResult, error) {
	var removed models.Booking
	t, err := e.agg.mutate(ctx, "delete booking", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := locate(t, itineraryID)
		if err != nil {
			return err
		}
		i := it.BookingIndex(bookingID)
		if i < 0 {
			return notFound(EntityBooking, bookingID)
		}
		removed = it.Bookings[i]
		it.Bookings = append(it.Bookings[:i:i], it.Bookings[i+1:]...)
		it.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bookingResult(t, itineraryID, bookingID, &removed)
}

func bookingResult(t *models.Travel, itineraryID, bookingID string, removed *models.Booking) (*BookingResult, error) {
	it, err := locate(t, itineraryID)
	if err != nil {
		return nil, err
	}
	res := &BookingResult{Itinerary: copyItinerary(it), Booking: removed}
	if removed == nil {
		i := it.BookingIndex(bookingID)
		if i < 0 {
			return nil, notFound(EntityBooking, bookingID)
		}
		b := it.Bookings[i]
		res.Booking = &b
	}
	return res, nil
}

// ---------- Daily activities ----------

func (e *Editor) AddActivity(ctx context.Context, travelID, twinID, itineraryID string, in models.ActivityInput) (*ActivityResult, error) {
	id := e.agg.opts.NewID()
	t, err := e.agg.mutate(ctx, "add activity", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := locate(t, itineraryID)
		if err != nil {
			return err
		}
		a, err := models.NewDailyActivity(id, in, now)
		if err != nil {
			return err
		}
		it.Activities = append(it.Activities, *a)
		it.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activityResult(t, itineraryID, id, nil)
}

func (e *Editor) UpdateActivity(ctx context.Context, travelID, twinID, itineraryID, activityID string, patch models.ActivityPatch) (*ActivityResult, error) {
	t, err := e.agg.mutate(ctx, "update activity", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := locate(t, itineraryID)
		if err != nil {
			return err
		}
		i := it.ActivityIndex(activityID)
		if i < 0 {
			return notFound(EntityActivity, activityID)
		}
		if err := patch.Apply(&it.Activities[i]); err != nil {
			return err
		}
		it.Activities[i].UpdatedAt = now
		it.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activityResult(t, itineraryID, activityID, nil)
}

func (e *Editor) DeleteActivity(ctx context.Context, travelID, twinID, itineraryID, activityID string) (*ActivityResult, error) {
	var removed models.DailyActivity
	t, err := e.agg.mutate(ctx, "delete activity", travelID, twinID, func(t *models.Travel, now time.Time) error {
		it, err := locate(t, itineraryID)
		if err != nil {
			return err
		}
		i := it.ActivityIndex(activityID)
		if i < 0 {
			return notFound(EntityActivity, activityID)
		}
		removed = it.Activities[i]
		it.Activities = append(it.Activities[:i:i], it.Activities[i+1:]...)
		it.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activityResult(t, itineraryID, activityID, &removed)
}

func activityResult(t *models.Travel, itineraryID, activityID string, removed *models.DailyActivity) (*ActivityResult, error) {
	it, err := locate(t, itineraryID)
	if err != nil {
		return nil, err
	}
	res := &ActivityResult{Itinerary: copyItinerary(it), Activity: removed}
	if removed == nil {
		i := it.ActivityIndex(activityID)
		if i < 0 {
			return nil, notFound(EntityActivity, activityID)
		}
		a := it.Activities[i]
		res.Activity = &a
	}
	return res, nil
}
