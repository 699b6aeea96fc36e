package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mrdavis-dev/carwash-cloud-api/internal/models"
)

// MongoCarCollection implements CarCollection for MongoDB.
type MongoCarCollection struct {
	Collection *mongo.Collection
}

// InsertCar inserts a new car record. Duplicate plates surface as
// ErrDuplicatePlate via the unique plate index.
func (c *MongoCarCollection) InsertCar(ctx context.Context, car models.Car) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, car)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("plate %s: %w", car.Plate, ErrDuplicatePlate)
	}
	return err
}

// FindCars returns every registered car.
func (c *MongoCarCollection) FindCars(ctx context.Context) ([]models.Car, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	cars := []models.Car{}
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// FindCarByPlate finds a car by its plate.
func (c *MongoCarCollection) FindCarByPlate(ctx context.Context, plate string) (*models.Car, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var car models.Car
	err := c.Collection.FindOne(ctx, bson.M{"plate": plate}).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("car with plate %s: %w", plate, ErrNotFound)
		}
		return nil, err
	}
	return &car, nil
}

// CreditPoints increments the car's loyalty balance with an atomic $inc and
// returns the updated document.
func (c *MongoCarCollection) CreditPoints(ctx context.Context, plate string, points int) (*models.Car, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var car models.Car
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"plate": plate},
		bson.M{"$inc": bson.M{"loyalty_points": points}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&car)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("car with plate %s: %w", plate, ErrNotFound)
		}
		return nil, err
	}
	return &car, nil
}
