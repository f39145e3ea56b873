package travel

import (
	"context"
	"errors"
	"time"

	"travelbook/logger"
	"travelbook/models"
)

// Repository handles the root travel document. It never touches search
// indexes; publishing changes is the caller's job.
type Repository struct {
	agg *aggregate
}

func NewRepository(store Store, cache ItineraryCache, opts Options, log *logger.Logger) *Repository {
	return &Repository{agg: &aggregate{store: store, cache: cache, opts: opts.withDefaults(), log: log}}
}

// Create assigns an id, stamps both timestamps, computes the duration and
// inserts the travel with no itineraries.
func (r *Repository) Create(ctx context.Context, twinID string, in models.TravelInput) (*models.Travel, error) {
	now := r.agg.stamp(time.Time{})
	t, err := models.NewTravel(r.agg.opts.NewID(), twinID, in, now)
	if err != nil {
		return nil, classify("create travel", err)
	}
	t.Revision = 1

	ctx, cancel := context.WithTimeout(ctx, r.agg.opts.StoreTimeout)
	defer cancel()
	if err := r.agg.store.Insert(ctx, t); err != nil {
		return nil, classify("insert travel", err)
	}
	r.agg.log.Info("travel created", "travelId", t.ID, "twinId", twinID)
	return t, nil
}

func (r *Repository) Get(ctx context.Context, travelID, twinID string) (*models.Travel, error) {
	return r.agg.load(ctx, travelID, twinID)
}

// Update merges only the fields present in patch. The duration is
// recomputed from the merged dates, and itinerary snapshots are refreshed
// whenever a mirrored field changed.
func (r *Repository) Update(ctx context.Context, travelID, twinID string, patch models.TravelPatch) (*models.Travel, error) {
	return r.agg.mutate(ctx, "update travel", travelID, twinID, func(t *models.Travel, _ time.Time) error {
		changed, err := patch.Apply(t)
		if err != nil {
			return err
		}
		if changed {
			snap := t.Snapshot()
			for i := range t.Itineraries {
				t.Itineraries[i].Travel = snap
			}
		}
		return nil
	})
}

// Delete removes the travel and, with it, every nested entity. It returns
// the snapshot that was deleted.
func (r *Repository) Delete(ctx context.Context, travelID, twinID string) (*models.Travel, error) {
	var lastErr error
	for attempt := 1; attempt <= r.agg.opts.WriteRetries; attempt++ {
		t, err := r.agg.load(ctx, travelID, twinID)
		if err != nil {
			return nil, err
		}
		err = r.delete(ctx, t)
		switch {
		case err == nil:
			r.agg.log.Info("travel deleted", "travelId", travelID, "twinId", twinID, "itineraries", len(t.Itineraries))
			// nothing read at or before the deleted revision may come back
			r.agg.invalidate(ctx, twinID, travelID, t.Revision+1)
			return t, nil
		case errors.Is(err, ErrRevisionMismatch):
			lastErr = err
			r.agg.log.Warn("travel revision conflict on delete", "travelId", travelID, "attempt", attempt)
		case errors.Is(err, ErrNoDocument):
			return nil, notFound(EntityTravel, travelID)
		default:
			return nil, classify("delete travel", err)
		}
	}
	return nil, &Error{Kind: KindConflict, Msg: "delete travel: travel kept changing", Err: lastErr}
}

func (r *Repository) delete(ctx context.Context, t *models.Travel) error {
	ctx, cancel := context.WithTimeout(ctx, r.agg.opts.StoreTimeout)
	defer cancel()
	return r.agg.store.Delete(ctx, t.ID, t.TwinID, t.Revision)
}
