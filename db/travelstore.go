package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelbook/models"
	"travelbook/travel"
)

// TravelStore is the MongoDB implementation of travel.Store and
// travel.DocumentStore. One document per travel, partitioned by TwinID.
type TravelStore struct {
	travels   *mongo.Collection
	documents *mongo.Collection
}

func NewTravelStore(travels, documents *mongo.Collection) *TravelStore {
	return &TravelStore{travels: travels, documents: documents}
}

func (s *TravelStore) Insert(ctx context.Context, t *models.Travel) error {
	_, err := s.travels.InsertOne(ctx, t)
	return err
}

func (s *TravelStore) Get(ctx context.Context, travelID, twinID string) (*models.Travel, error) {
	var t models.Travel
	err := s.travels.FindOne(ctx, TravelKey(travelID, twinID)).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, travel.ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// missingOrChanged tells apart a conditional write that matched nothing
// because the document is gone from one that lost a revision race.
func (s *TravelStore) missingOrChanged(ctx context.Context, travelID, twinID string) error {
	n, err := s.travels.CountDocuments(ctx, TravelKey(travelID, twinID), options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return travel.ErrNoDocument
	}
	return travel.ErrRevisionMismatch
}

func (s *TravelStore) Replace(ctx context.Context, t *models.Travel, expectedRev int64) error {
	filter := TravelKey(t.ID, t.TwinID)
	filter["_rev"] = expectedRev
	res, err := s.travels.ReplaceOne(ctx, filter, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.missingOrChanged(ctx, t.ID, t.TwinID)
	}
	return nil
}

func (s *TravelStore) Delete(ctx context.Context, travelID, twinID string, expectedRev int64) error {
	filter := TravelKey(travelID, twinID)
	filter["_rev"] = expectedRev
	res, err := s.travels.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.missingOrChanged(ctx, travelID, twinID)
	}
	return nil
}

func (s *TravelStore) Find(ctx context.Context, twinID string, q travel.FindOptions) ([]models.Travel, error) {
	if q.Skip < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("invalid window skip=%d limit=%d", q.Skip, q.Limit)
	}
	opts := options.Find().SetSort(BuildSort(q.SortBy, q.Descending))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cursor, err := s.travels.Find(ctx, BuildFilter(twinID, q.Criteria), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	travels := []models.Travel{}
	if err := cursor.All(ctx, &travels); err != nil {
		return nil, err
	}
	return travels, nil
}

func (s *TravelStore) Count(ctx context.Context, twinID string, c travel.Criteria) (int64, error) {
	return s.travels.CountDocuments(ctx, BuildFilter(twinID, c))
}

func (s *TravelStore) GetItinerary(ctx context.Context, twinID, travelID, itineraryID string) (*models.Itinerary, int64, error) {
	var projected struct {
		Revision    int64              `bson:"_rev"`
		Itineraries []models.Itinerary `bson:"itinerarios"`
	}
	opts := options.FindOne().SetProjection(ItineraryProjection(itineraryID))
	err := s.travels.FindOne(ctx, TravelKey(travelID, twinID), opts).Decode(&projected)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, 0, travel.ErrNoDocument
	}
	if err != nil {
		return nil, 0, err
	}
	if len(projected.Itineraries) == 0 || projected.Itineraries[0].ID != itineraryID {
		return nil, projected.Revision, nil
	}
	return &projected.Itineraries[0], projected.Revision, nil
}

func (s *TravelStore) InsertDocument(ctx context.Context, d *models.TravelDocument) error {
	_, err := s.documents.InsertOne(ctx, d)
	return err
}

func (s *TravelStore) ListDocuments(ctx context.Context, twinID, travelID string, limit int) ([]models.TravelDocument, error) {
	filter := bson.M{"TwinID": twinID, "documentType": models.DocumentTypeTravelDocument}
	if travelID != "" {
		filter["viajeId"] = travelID
	}
	opts := options.Find().SetSort(bson.D{{Key: "fechaCreacion", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.documents.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []models.TravelDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
