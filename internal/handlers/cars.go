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

// CarsHandler serves the vehicle registry endpoints.
type CarsHandler struct {
	cars        db.CarCollection
	assignments db.AssignmentCollection
}

// NewCarsHandler creates a new vehicle registry handler.
func NewCarsHandler(cars db.CarCollection, assignments db.AssignmentCollection) *CarsHandler {
	return &CarsHandler{cars: cars, assignments: assignments}
}

// Register handles POST /cars/. Plates are case-sensitive and unique;
// registering one twice is rejected with 409.
func (h *CarsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CarCreate
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	car := models.Car{
		ID:            primitive.NewObjectID(),
		Plate:         req.Plate,
		CarType:       req.CarType,
		OwnerName:     req.OwnerName,
		OwnerPhone:    req.OwnerPhone,
		LoyaltyPoints: 0,
	}
	if err := h.cars.InsertCar(r.Context(), car); err != nil {
		if errors.Is(err, db.ErrDuplicatePlate) {
			httputil.WriteError(w, http.StatusConflict, fmt.Sprintf("car with plate %s is already registered", req.Plate))
			return
		}
		log.WithError(err).Error("failed to register car")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to register car")
		return
	}

	log.WithFields(log.Fields{"plate": car.Plate, "owner": car.OwnerName}).Info("car registered")
	httputil.WriteJSON(w, http.StatusCreated, car)
}

// List handles GET /cars/.
func (h *CarsHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.FindCars(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list cars")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list cars")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cars)
}

// Get handles GET /cars/{plate}.
func (h *CarsHandler) Get(w http.ResponseWriter, r *http.Request) {
	plate := mux.Vars(r)["plate"]
	car, err := h.cars.FindCarByPlate(r.Context(), plate)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, fmt.Sprintf("car with plate %s not found", plate))
			return
		}
		log.WithError(err).Error("failed to fetch car")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch car")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, car)
}

// History handles GET /cars/{plate}/history. The plate must be registered;
// the history covers Pending and Completed assignments alike, newest first.
func (h *CarsHandler) History(w http.ResponseWriter, r *http.Request) {
	plate := mux.Vars(r)["plate"]
	if _, err := h.cars.FindCarByPlate(r.Context(), plate); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, fmt.Sprintf("car with plate %s not found", plate))
			return
		}
		log.WithError(err).Error("failed to fetch car")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch car")
		return
	}

	history, err := h.assignments.FindAssignmentsByPlate(r.Context(), plate)
	if err != nil {
		log.WithError(err).Error("failed to fetch history")
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch history")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, history)
}
