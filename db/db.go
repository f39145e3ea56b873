package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelbook/config"
	"travelbook/logger"
)

var (
	TravelsCollection   *mongo.Collection
	DocumentsCollection *mongo.Collection
	Client              *mongo.Client
)

// Connect opens the MongoDB client, pings it and binds the collections.
func Connect(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	Client = client
	database := client.Database(cfg.MongoDatabase)
	TravelsCollection = database.Collection("travels")
	DocumentsCollection = database.Collection("travel_documents")

	log.Info("connected to MongoDB", "database", cfg.MongoDatabase)
	return CreateIndexes(ctx)
}

// CreateIndexes makes (TwinID, id) unique and backs the default listing order.
func CreateIndexes(ctx context.Context) error {
	_, err := TravelsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "TwinID", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "TwinID", Value: 1}, {Key: "fechaCreacion", Value: -1}},
		},
	})
	if err != nil {
		return err
	}
	_, err = DocumentsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "TwinID", Value: 1}, {Key: "viajeId", Value: 1}},
	})
	return err
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
