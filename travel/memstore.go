package travel

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"travelbook/models"
)

// MemoryStore keeps encoded documents in process memory. Documents go
// through the same bson encoding as the mongo store, so callers never share
// memory with what is stored. Used for tests and STORE_DRIVER=memory.
type MemoryStore struct {
	mu        sync.RWMutex
	travels   map[string][]byte
	documents []models.TravelDocument
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{travels: map[string][]byte{}}
}

func memKey(travelID, twinID string) string {
	return twinID + "/" + travelID
}

func decodeTravel(raw []byte) (*models.Travel, error) {
	var t models.Travel
	if err := bson.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func storedRevision(raw []byte) int64 {
	v := bson.Raw(raw).Lookup("_rev")
	if i, ok := v.Int64OK(); ok {
		return i
	}
	if i, ok := v.Int32OK(); ok {
		return int64(i)
	}
	return 0
}

func (m *MemoryStore) Insert(_ context.Context, t *models.Travel) error {
	raw, err := bson.Marshal(t)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memKey(t.ID, t.TwinID)
	if _, ok := m.travels[k]; ok {
		return fmt.Errorf("duplicate travel id %s", t.ID)
	}
	m.travels[k] = raw
	return nil
}

func (m *MemoryStore) Get(_ context.Context, travelID, twinID string) (*models.Travel, error) {
	m.mu.RLock()
	raw, ok := m.travels[memKey(travelID, twinID)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoDocument
	}
	return decodeTravel(raw)
}

func (m *MemoryStore) Replace(_ context.Context, t *models.Travel, expectedRev int64) error {
	raw, err := bson.Marshal(t)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memKey(t.ID, t.TwinID)
	cur, ok := m.travels[k]
	if !ok {
		return ErrNoDocument
	}
	if storedRevision(cur) != expectedRev {
		return ErrRevisionMismatch
	}
	m.travels[k] = raw
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, travelID, twinID string, expectedRev int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memKey(travelID, twinID)
	cur, ok := m.travels[k]
	if !ok {
		return ErrNoDocument
	}
	if storedRevision(cur) != expectedRev {
		return ErrRevisionMismatch
	}
	delete(m.travels, k)
	return nil
}

func (m *MemoryStore) matching(twinID string, c Criteria) ([]models.Travel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Travel
	for _, raw := range m.travels {
		t, err := decodeTravel(raw)
		if err != nil {
			return nil, err
		}
		if t.TwinID == twinID && c.Matches(t) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *MemoryStore) Find(_ context.Context, twinID string, q FindOptions) ([]models.Travel, error) {
	if q.Skip < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("invalid window skip=%d limit=%d", q.Skip, q.Limit)
	}
	all, err := m.matching(twinID, q.Criteria)
	if err != nil {
		return nil, err
	}
	key := q.SortBy
	if key == "" {
		key = SortCreatedAt
	}
	sort.Slice(all, func(i, j int) bool {
		return Compare(&all[i], &all[j], key, q.Descending) < 0
	})
	if q.Skip >= len(all) {
		return []models.Travel{}, nil
	}
	all = all[q.Skip:]
	if q.Limit > 0 && q.Limit < len(all) {
		all = all[:q.Limit]
	}
	return all, nil
}

func (m *MemoryStore) Count(_ context.Context, twinID string, c Criteria) (int64, error) {
	all, err := m.matching(twinID, c)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func (m *MemoryStore) GetItinerary(ctx context.Context, twinID, travelID, itineraryID string) (*models.Itinerary, int64, error) {
	t, err := m.Get(ctx, travelID, twinID)
	if err != nil {
		return nil, 0, err
	}
	i := t.ItineraryIndex(itineraryID)
	if i < 0 {
		return nil, t.Revision, nil
	}
	return &t.Itineraries[i], t.Revision, nil
}

func (m *MemoryStore) InsertDocument(_ context.Context, d *models.TravelDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = append(m.documents, *d)
	return nil
}

func (m *MemoryStore) ListDocuments(_ context.Context, twinID, travelID string, limit int) ([]models.TravelDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.TravelDocument
	for _, d := range m.documents {
		if d.TwinID != twinID || (travelID != "" && d.TravelID != travelID) {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
