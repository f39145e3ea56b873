package travel

import (
	"context"

	"travelbook/models"
)

// Store is the partitioned document store holding one document per travel.
// Single-document writes are its only consistency primitive; Replace and
// Delete are conditional on the stored revision.
type Store interface {
	Insert(ctx context.Context, t *models.Travel) error
	// Get returns ErrNoDocument when (travelID, twinID) does not exist.
	Get(ctx context.Context, travelID, twinID string) (*models.Travel, error)
	// Replace overwrites the whole document if its stored revision still
	// equals expectedRev, and stores t.Revision. It returns ErrNoDocument
	// when the document is gone and ErrRevisionMismatch when it changed.
	Replace(ctx context.Context, t *models.Travel, expectedRev int64) error
	Delete(ctx context.Context, travelID, twinID string, expectedRev int64) error

	Find(ctx context.Context, twinID string, q FindOptions) ([]models.Travel, error)
	Count(ctx context.Context, twinID string, c Criteria) (int64, error)

	// GetItinerary projects a single itinerary and the document revision
	// out of the travel without loading the rest of it. It returns
	// ErrNoDocument when the travel is missing and a nil itinerary when only
	// the itinerary is.
	GetItinerary(ctx context.Context, twinID, travelID, itineraryID string) (*models.Itinerary, int64, error)
}

// DocumentStore keeps the travel documents extracted from uploaded files.
type DocumentStore interface {
	InsertDocument(ctx context.Context, d *models.TravelDocument) error
	// ListDocuments lists documents of a twin, optionally narrowed to one travel.
	ListDocuments(ctx context.Context, twinID, travelID string, limit int) ([]models.TravelDocument, error)
}

// ItineraryCache is an optional read-through cache for the sub-query path.
// Entries are keyed per travel so that any write can drop them at once.
//
// Every fill carries the revision it was read at and every invalidation the
// revision just written. The cache keeps the highest revision it has seen
// and refuses fills read below it, so a slow reader cannot put back a copy
// that an invalidation already dropped.
type ItineraryCache interface {
	GetItinerary(ctx context.Context, twinID, travelID, itineraryID string) (*models.Itinerary, bool)
	SetItinerary(ctx context.Context, twinID, travelID string, rev int64, it *models.Itinerary)
	InvalidateTravel(ctx context.Context, twinID, travelID string, rev int64) error
}

type SortKey string

const (
	SortStartDate SortKey = "start-date"
	SortTitle     SortKey = "title"
	SortBudget    SortKey = "budget"
	SortRating    SortKey = "rating"
	SortCreatedAt SortKey = "creation-date"
)

// FindOptions is what the query engine hands to the store: the predicate,
// the ordering and the window. Limit 0 means no limit.
type FindOptions struct {
	Criteria   Criteria
	SortBy     SortKey
	Descending bool
	Skip       int
	Limit      int
}
