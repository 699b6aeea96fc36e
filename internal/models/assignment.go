package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus is the lifecycle state of a wash assignment.
type AssignmentStatus string

const (
	StatusPending   AssignmentStatus = "Pending"
	StatusCompleted AssignmentStatus = "Completed"
)

// PointsPerWash is the fixed loyalty credit for one completed wash.
const PointsPerWash = 1

// Assignment represents one wash service linking a car, an employee and a
// service type. It is created Pending and transitions to Completed exactly
// once; PointsEarned stays 0 until that transition.
type Assignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CarPlate     string             `bson:"car_plate" json:"car_plate"`
	EmployeeName string             `bson:"employee_name" json:"employee_name"`
	ServiceType  string             `bson:"service_type" json:"service_type"`
	Status       AssignmentStatus   `bson:"status" json:"status"`
	PointsEarned int                `bson:"points_earned" json:"points_earned"`
}

// AssignmentCreate is the request payload for opening an assignment.
type AssignmentCreate struct {
	CarPlate     string `json:"car_plate"`
	EmployeeName string `json:"employee_name"`
	ServiceType  string `json:"service_type"`
}

// Validate checks that every assignment field is present.
func (a *AssignmentCreate) Validate() error {
	if a.CarPlate == "" {
		return errors.New("car_plate is required")
	}
	if a.EmployeeName == "" {
		return errors.New("employee_name is required")
	}
	if a.ServiceType == "" {
		return errors.New("service_type is required")
	}
	return nil
}
