package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mrdavis-dev/carwash-cloud-api/internal/db"
	"github.com/mrdavis-dev/carwash-cloud-api/internal/httputil"
	"github.com/mrdavis-dev/carwash-cloud-api/internal/models"
)

// AssignmentsHandler serves the wash assignment endpoints.
type AssignmentsHandler struct {
	assignments db.AssignmentCollection
	cars        db.CarCollection
}

// NewAssignmentsHandler creates a new assignment ledger handler.
func NewAssignmentsHandler(assignments db.AssignmentCollection, cars db.CarCollection) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignments, cars: cars}
}

// Create handles POST /assignments/. The referenced car must already be
// registered; new assignments start out Pending with no points earned.
func (h *AssignmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AssignmentCreate
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.cars.FindCarByPlate(r.Context(), req.CarPlate); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, fmt.Sprintf("car with plate %s is not registered", req.CarPlate))
			return
		}
		log.WithError(err).Error("failed to fetch car")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create assignment")
		return
	}

	assignment := models.Assignment{
		ID:           primitive.NewObjectID(),
		CarPlate:     req.CarPlate,
		EmployeeName: req.EmployeeName,
		ServiceType:  req.ServiceType,
		Status:       models.StatusPending,
		PointsEarned: 0,
	}
	if err := h.assignments.InsertAssignment(r.Context(), assignment); err != nil {
		log.WithError(err).Error("failed to create assignment")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create assignment")
		return
	}

	log.WithFields(log.Fields{
		"assignment_id": assignment.ID.Hex(),
		"plate":         assignment.CarPlate,
		"employee":      assignment.EmployeeName,
	}).Info("assignment created")
	httputil.WriteJSON(w, http.StatusCreated, assignment)
}

// ListPending handles GET /assignments/. Completed assignments are only
// visible through a car's history.
func (h *AssignmentsHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignments.FindPendingAssignments(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list assignments")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, assignments)
}

// Complete handles PUT /assignments/{id}/complete. Completing an assignment
// credits the car's loyalty points exactly once; repeat calls get 409.
func (h *AssignmentsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	assignment, err := h.assignments.CompleteAssignment(r.Context(), id, models.PointsPerWash)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrInvalidID):
			httputil.WriteError(w, http.StatusBadRequest, "invalid assignment id")
		case errors.Is(err, db.ErrNotFound):
			httputil.WriteError(w, http.StatusNotFound, "assignment not found")
		case errors.Is(err, db.ErrAlreadyCompleted):
			httputil.WriteError(w, http.StatusConflict, "assignment is already completed")
		default:
			log.WithError(err).Error("failed to complete assignment")
			httputil.WriteError(w, http.StatusInternalServerError, "failed to complete assignment")
		}
		return
	}

	log.WithFields(log.Fields{
		"assignment_id": assignment.ID.Hex(),
		"plate":         assignment.CarPlate,
		"points":        assignment.PointsEarned,
	}).Info("assignment completed")
	httputil.WriteJSON(w, http.StatusOK, assignment)
}
