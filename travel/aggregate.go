package travel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"travelbook/logger"
	"travelbook/models"
)

func newID() string {
	return uuid.New().String()
}

// aggregate owns the read-modify-write cycle shared by root updates and
// every nested edit: load the whole travel, apply one functional change,
// write the whole travel back conditioned on the revision it was read at.
type aggregate struct {
	store Store
	cache ItineraryCache
	opts  Options
	log   *logger.Logger
}

// mutation applies one change to a freshly loaded travel. It may run more
// than once when a concurrent writer wins the race, so it must not keep
// state between calls other than what it deliberately overwrites.
type mutation func(t *models.Travel, now time.Time) error

func (a *aggregate) load(ctx context.Context, travelID, twinID string) (*models.Travel, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.StoreTimeout)
	defer cancel()

	t, err := a.store.Get(ctx, travelID, twinID)
	if errors.Is(err, ErrNoDocument) {
		return nil, notFound(EntityTravel, travelID)
	}
	if err != nil {
		return nil, classify("read travel", err)
	}
	t.Normalize()
	return t, nil
}

// stamp returns a write timestamp strictly after prev, at the millisecond
// precision the document store keeps.
func (a *aggregate) stamp(prev time.Time) time.Time {
	now := a.opts.Now().UTC().Truncate(time.Millisecond)
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func (a *aggregate) mutate(ctx context.Context, op, travelID, twinID string, fn mutation) (*models.Travel, error) {
	var lastErr error
	for attempt := 1; attempt <= a.opts.WriteRetries; attempt++ {
		t, err := a.load(ctx, travelID, twinID)
		if err != nil {
			return nil, err
		}
		now := a.stamp(t.UpdatedAt)
		if err := fn(t, now); err != nil {
			return nil, classify(op, err)
		}

		expected := t.Revision
		t.Revision = expected + 1
		t.UpdatedAt = now
		t.DocumentType = models.DocumentTypeTravel
		t.StatusMirror = t.Status

		err = a.replace(ctx, t, expected)
		switch {
		case err == nil:
			a.log.Debug("travel written", "op", op, "travelId", travelID, "twinId", twinID, "revision", t.Revision)
			a.invalidate(ctx, twinID, travelID, t.Revision)
			return t, nil
		case errors.Is(err, ErrRevisionMismatch):
			lastErr = err
			a.log.Warn("travel revision conflict", "op", op, "travelId", travelID, "attempt", attempt, "expected", expected)
		case errors.Is(err, ErrNoDocument):
			return nil, notFound(EntityTravel, travelID)
		default:
			return nil, classify(op, err)
		}
	}
	return nil, &Error{
		Kind: KindConflict,
		Msg:  fmt.Sprintf("%s: travel %s kept changing after %d attempts", op, travelID, a.opts.WriteRetries),
		Err:  lastErr,
	}
}

func (a *aggregate) replace(ctx context.Context, t *models.Travel, expected int64) error {
	ctx, cancel := context.WithTimeout(ctx, a.opts.StoreTimeout)
	defer cancel()
	return a.store.Replace(ctx, t, expected)
}

// invalidate drops cached sub-query results of a travel and raises its
// revision floor to rev. A failing cache never fails the write that
// preceded it.
func (a *aggregate) invalidate(ctx context.Context, twinID, travelID string, rev int64) {
	if a.cache == nil {
		return
	}
	if err := a.cache.InvalidateTravel(ctx, twinID, travelID, rev); err != nil {
		a.log.Warn("itinerary cache invalidation failed", "travelId", travelID, "error", err)
	}
}
