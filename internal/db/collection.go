package db

import (
	"context"
	"errors"

	"github.com/mrdavis-dev/carwash-cloud-api/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the given key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicatePlate is returned when registering a plate that already exists.
	ErrDuplicatePlate = errors.New("plate already registered")
	// ErrAlreadyCompleted is returned when completing an assignment twice.
	ErrAlreadyCompleted = errors.New("assignment already completed")
	// ErrInvalidID is returned for assignment ids that are not valid object ids.
	ErrInvalidID = errors.New("invalid assignment id")
)

// CarCollection defines the persistence surface of the vehicle registry.
type CarCollection interface {
	InsertCar(ctx context.Context, car models.Car) error
	FindCars(ctx context.Context) ([]models.Car, error)
	FindCarByPlate(ctx context.Context, plate string) (*models.Car, error)
	// CreditPoints atomically increments the car's loyalty balance and
	// returns the updated document.
	CreditPoints(ctx context.Context, plate string, points int) (*models.Car, error)
}

// AssignmentCollection defines the persistence surface of the assignment ledger.
type AssignmentCollection interface {
	InsertAssignment(ctx context.Context, assignment models.Assignment) error
	FindPendingAssignments(ctx context.Context) ([]models.Assignment, error)
	// FindAssignmentsByPlate returns every assignment for the plate, any
	// status, newest first.
	FindAssignmentsByPlate(ctx context.Context, plate string) ([]models.Assignment, error)
	// CompleteAssignment transitions the assignment from Pending to
	// Completed and credits the car's loyalty balance as one unit. It
	// returns ErrAlreadyCompleted if the assignment is already terminal.
	CompleteAssignment(ctx context.Context, id string, points int) (*models.Assignment, error)
}
