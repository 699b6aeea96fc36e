package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mrdavis-dev/carwash-cloud-api/internal/models"
)

// MongoAssignmentCollection implements AssignmentCollection for MongoDB.
// Completing an assignment also credits the owning car, so the collection
// holds the car collection and the client that owns the session for that
// two-document transaction.
type MongoAssignmentCollection struct {
	Collection *mongo.Collection
	Cars       CarCollection
	Client     *mongo.Client
}

// InsertAssignment inserts a new assignment record.
func (c *MongoAssignmentCollection) InsertAssignment(ctx context.Context, assignment models.Assignment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, assignment)
	return err
}

// FindPendingAssignments returns every assignment still in the Pending state.
func (c *MongoAssignmentCollection) FindPendingAssignments(ctx context.Context) ([]models.Assignment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{"status": models.StatusPending})
	if err != nil {
		return nil, err
	}
	assignments := []models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindAssignmentsByPlate returns the full history for a plate, newest first.
func (c *MongoAssignmentCollection) FindAssignmentsByPlate(ctx context.Context, plate string) ([]models.Assignment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(
		ctx,
		bson.M{"car_plate": plate},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	assignments := []models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// CompleteAssignment transitions the assignment to Completed and credits the
// car's loyalty balance inside one multi-document transaction: either both
// records are updated or neither is. The status update only matches documents
// still Pending, so concurrent completions of the same assignment produce
// exactly one credit.
func (c *MongoAssignmentCollection) CompleteAssignment(ctx context.Context, id string, points int) (*models.Assignment, error) {
	if c.Collection == nil || c.Client == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("assignment id %q: %w", id, ErrInvalidID)
	}

	session, err := c.Client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		var assignment models.Assignment
		if err := c.Collection.FindOne(sessCtx, bson.M{"_id": objectID}).Decode(&assignment); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
			}
			return nil, err
		}
		if assignment.Status == models.StatusCompleted {
			return nil, ErrAlreadyCompleted
		}

		res, err := c.Collection.UpdateOne(
			sessCtx,
			bson.M{"_id": objectID, "status": models.StatusPending},
			bson.M{"$set": bson.M{"status": models.StatusCompleted, "points_earned": points}},
		)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 0 {
			// lost the race against a concurrent completion
			return nil, ErrAlreadyCompleted
		}

		// rides the session context, so the credit aborts with the transition
		if _, err := c.Cars.CreditPoints(sessCtx, assignment.CarPlate, points); err != nil {
			// cars are never deleted; a car missing at credit time is store
			// corruption and must not read as a missing assignment
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("credit car %s for assignment %s: %v", assignment.CarPlate, id, err)
			}
			return nil, err
		}

		assignment.Status = models.StatusCompleted
		assignment.PointsEarned = points
		return &assignment, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Assignment), nil
}
