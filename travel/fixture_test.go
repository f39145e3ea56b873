package travel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"travelbook/logger"
	"travelbook/models"
)

const twin = "twin-1"

// tick is a deterministic clock that advances one second per call.
type tick struct {
	t time.Time
}

func (c *tick) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	store   *MemoryStore
	repo    *Repository
	editor  *Editor
	queries *Queries
	docs    *Documents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, NewMemoryStore(), nil)
}

func newFixtureWith(t *testing.T, store Store, cache ItineraryCache) *fixture {
	t.Helper()
	clock := &tick{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts := Options{Now: clock.Now}
	log := logger.NewNop()

	f := &fixture{
		repo:    NewRepository(store, cache, opts, log),
		editor:  NewEditor(store, cache, opts, log),
		queries: NewQueries(store, opts, log),
	}
	if mem, ok := store.(*MemoryStore); ok {
		f.store = mem
		f.docs = NewDocuments(mem, store, opts, log)
	}
	return f
}

func (f *fixture) create(t *testing.T, in models.TravelInput) *models.Travel {
	t.Helper()
	tr, err := f.repo.Create(context.Background(), twin, in)
	require.NoError(t, err)
	return tr
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
