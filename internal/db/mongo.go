package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects to MongoDB using the MONGO_URL environment variable.
func ConnectMongo() (*mongo.Client, error) {
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store bundles the Mongo-backed collections behind a single handle that is
// constructed once at startup and disconnected on shutdown.
type Store struct {
	client      *mongo.Client
	Cars        *MongoCarCollection
	Assignments *MongoAssignmentCollection
}

// NewStore wires the car and assignment collections of the named database.
func NewStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	cars := &MongoCarCollection{Collection: database.Collection("cars")}
	assignments := &MongoAssignmentCollection{
		Collection: database.Collection("assignments"),
		Cars:       cars,
		Client:     client,
	}
	return &Store{client: client, Cars: cars, Assignments: assignments}
}

// EnsureIndexes creates the indexes the registry relies on: the unique plate
// index backs duplicate-registration detection, the assignment indexes back
// the history and pending-list queries.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Cars.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "plate", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create cars plate index: %w", err)
	}
	_, err = s.Assignments.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "car_plate", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create assignment indexes: %w", err)
	}
	return nil
}

// Disconnect closes the underlying client connection.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
