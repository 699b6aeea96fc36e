package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Car represents a registered vehicle and its accumulated loyalty balance.
// The plate is the natural key: unique, user-supplied and case-sensitive.
type Car struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Plate         string             `bson:"plate" json:"plate"`
	CarType       string             `bson:"car_type" json:"car_type"`
	OwnerName     string             `bson:"owner_name" json:"owner_name"`
	OwnerPhone    string             `bson:"owner_phone" json:"owner_phone"`
	LoyaltyPoints int                `bson:"loyalty_points" json:"loyalty_points"`
}

// CarCreate is the request payload for registering a car.
type CarCreate struct {
	Plate      string `json:"plate"`
	CarType    string `json:"car_type"`
	OwnerName  string `json:"owner_name"`
	OwnerPhone string `json:"owner_phone"`
}

// Validate checks that every registration field is present.
func (c *CarCreate) Validate() error {
	if c.Plate == "" {
		return errors.New("plate is required")
	}
	if c.CarType == "" {
		return errors.New("car_type is required")
	}
	if c.OwnerName == "" {
		return errors.New("owner_name is required")
	}
	if c.OwnerPhone == "" {
		return errors.New("owner_phone is required")
	}
	return nil
}
