package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mrdavis-dev/carwash-cloud-api/internal/models"
)

func TestMongoCarCollection_InsertAndFind(t *testing.T) {
	client, err := ConnectMongo()
	if err != nil {
		t.Skipf("failed to create client: %v, skipping integration test", err)
	}
	defer client.Disconnect(context.Background())

	store := NewStore(client, "test_carwash")
	store.Cars.Collection.Drop(context.Background())
	store.Assignments.Collection.Drop(context.Background())
	require.NoError(t, store.EnsureIndexes(context.Background()))

	car := models.Car{
		ID:         primitive.NewObjectID(),
		Plate:      "ABC-123",
		CarType:    "sedan",
		OwnerName:  "Maria Lopez",
		OwnerPhone: "555-0101",
	}
	err = store.Cars.InsertCar(context.Background(), car)
	assert.NoError(t, err)

	found, err := store.Cars.FindCarByPlate(context.Background(), "ABC-123")
	assert.NoError(t, err)
	assert.Equal(t, car.Plate, found.Plate)
	assert.Equal(t, car.OwnerName, found.OwnerName)
	assert.Equal(t, 0, found.LoyaltyPoints)

	cars, err := store.Cars.FindCars(context.Background())
	assert.NoError(t, err)
	assert.Len(t, cars, 1)

	// Same plate again trips the unique index
	dup := car
	dup.ID = primitive.NewObjectID()
	err = store.Cars.InsertCar(context.Background(), dup)
	assert.True(t, errors.Is(err, ErrDuplicatePlate))

	// Plates are case sensitive, so a different casing is a different car
	lower := models.Car{ID: primitive.NewObjectID(), Plate: "abc-123", CarType: "sedan", OwnerName: "Maria Lopez", OwnerPhone: "555-0101"}
	assert.NoError(t, store.Cars.InsertCar(context.Background(), lower))

	_, err = store.Cars.FindCarByPlate(context.Background(), "ZZZ-999")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMongoCarCollection_CreditPoints(t *testing.T) {
	client, err := ConnectMongo()
	if err != nil {
		t.Skipf("failed to create client: %v, skipping integration test", err)
	}
	defer client.Disconnect(context.Background())

	store := NewStore(client, "test_carwash")
	store.Cars.Collection.Drop(context.Background())

	car := models.Car{ID: primitive.NewObjectID(), Plate: "DEF-456", CarType: "SUV", OwnerName: "David Chen", OwnerPhone: "555-0102"}
	require.NoError(t, store.Cars.InsertCar(context.Background(), car))

	updated, err := store.Cars.CreditPoints(context.Background(), "DEF-456", models.PointsPerWash)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated.LoyaltyPoints)

	updated, err = store.Cars.CreditPoints(context.Background(), "DEF-456", models.PointsPerWash)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.LoyaltyPoints)

	_, err = store.Cars.CreditPoints(context.Background(), "ZZZ-999", models.PointsPerWash)
	assert.True(t, errors.Is(err, ErrNotFound))
}
