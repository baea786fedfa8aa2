package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/models"
	log "github.com/sirupsen/logrus"
)

// VehicleHandler handles vehicle catalog CRUD.
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Vehicles routes /api/vehicles by method.
func (h *VehicleHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// VehicleByID routes /api/vehicles/{id} by method.
func (h *VehicleHandler) VehicleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/vehicles/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Expected /api/vehicles/{id}", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *VehicleHandler) list(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.FindVehicles(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list vehicles")
		http.Error(w, "Failed to list vehicles", http.StatusInternalServerError)
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.vehicles.FindVehicleByName(r.Context(), req.VehicleName); err == nil {
		http.Error(w, "Vehicle already exists", http.StatusConflict)
		return
	}

	vehicle := models.Vehicle{
		VehicleName: req.VehicleName,
		Bases:       req.Bases,
		Addons:      req.Addons,
	}
	if vehicle.Addons == nil {
		vehicle.Addons = map[string]float64{}
	}

	if err := h.vehicles.InsertVehicle(r.Context(), vehicle); err != nil {
		log.WithError(err).Error("failed to insert vehicle")
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Vehicle created"})
}

func (h *VehicleHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req models.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vehicle := models.Vehicle{
		VehicleName: req.VehicleName,
		Bases:       req.Bases,
		Addons:      req.Addons,
	}

	if err := h.vehicles.UpdateVehicle(r.Context(), id, vehicle); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to update vehicle")
		http.Error(w, "Failed to update vehicle", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated"})
}

func (h *VehicleHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Vehicle not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to delete vehicle")
		http.Error(w, "Failed to delete vehicle", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}
