package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/models"
	log "github.com/sirupsen/logrus"
)

// CustomerHandler handles customer CRUD and plate lookups.
type CustomerHandler struct {
	customers db.CustomerCollection
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customers db.CustomerCollection) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Customers routes /api/customers by method.
func (h *CustomerHandler) Customers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if plate := r.URL.Query().Get("plate"); plate != "" {
			h.lookupPlate(w, r, plate)
			return
		}
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CustomerByID routes /api/customers/{id} by method.
func (h *CustomerHandler) CustomerByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/customers/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Expected /api/customers/{id}", http.StatusBadRequest)
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

func (h *CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.FindCustomers(r.Context())
	if err != nil {
		log.WithError(err).Error("failed to list customers")
		http.Error(w, "Failed to list customers", http.StatusInternalServerError)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) lookupPlate(w http.ResponseWriter, r *http.Request, plate string) {
	customer, err := h.customers.FindCustomerByPlate(r.Context(), plate)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		log.WithError(err).Error("failed to look up customer")
		http.Error(w, "Failed to look up customer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.customers.FindCustomerByPlate(r.Context(), req.PlateNumber); err == nil {
		http.Error(w, "Customer already exists", http.StatusConflict)
		return
	}

	customer := models.Customer{
		PlateNumber: req.PlateNumber,
		Name:        req.Name,
		VehicleType: req.VehicleType,
		Phone:       req.Phone,
	}

	if err := h.customers.InsertCustomer(r.Context(), customer); err != nil {
		log.WithError(err).Error("failed to insert customer")
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Customer created"})
}

func (h *CustomerHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req models.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	customer := models.Customer{
		PlateNumber: req.PlateNumber,
		Name:        req.Name,
		VehicleType: req.VehicleType,
		Phone:       req.Phone,
	}

	if err := h.customers.UpdateCustomer(r.Context(), id, customer); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to update customer")
		http.Error(w, "Failed to update customer", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Customer updated"})
}

func (h *CustomerHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.customers.DeleteCustomer(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "Customer not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to delete customer")
		http.Error(w, "Failed to delete customer", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted"})
}
