package handlers

import (
	"net/http"
	"time"

	"github.com/cetadcco/carwash-pos/internal/billing"
	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/middleware"
	"github.com/cetadcco/carwash-pos/internal/models"
	"github.com/cetadcco/carwash-pos/internal/outbox"
	"github.com/cetadcco/carwash-pos/internal/shift"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// OrderHandler handles order submission and listing.
type OrderHandler struct {
	orders   db.OrderCollection
	vehicles db.VehicleCollection
	counters db.Counters
	outbox   *outbox.Store
	now      func() time.Time
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders db.OrderCollection, vehicles db.VehicleCollection, counters db.Counters, ob *outbox.Store) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		vehicles: vehicles,
		counters: counters,
		outbox:   ob,
		now:      time.Now,
	}
}

// Orders routes /api/orders by method.
func (h *OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// create records a wash order. The shift label, shift date and revenue
// split are all fixed at creation time; orders are never modified after
// this point.
func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var req models.AddOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	basePrice, err := billing.ParseAmount(req.BasePrice)
	if err != nil {
		http.Error(w, "Invalid base price", http.StatusBadRequest)
		return
	}

	// Unknown vehicles price every addon at zero rather than failing the
	// order.
	addonPrices, err := h.vehicles.AddonPrices(r.Context(), req.VehicleType)
	if err != nil {
		http.Error(w, "Failed to load vehicle catalog", http.StatusInternalServerError)
		return
	}

	withVacuum := false
	if vehicle, err := h.vehicles.FindVehicleByName(r.Context(), req.VehicleType); err == nil {
		if base, ok := vehicle.Bases[req.BaseService]; ok {
			withVacuum = base.Vac
		}
	}

	shares := billing.CalculateShares(basePrice, req.Addons, addonPrices)

	vacFee := 0.0
	if withVacuum {
		vacFee = billing.VacuumFee
	}

	orderNo, err := h.counters.Next(r.Context(), "orders")
	if err != nil {
		http.Error(w, "Failed to allocate order number", http.StatusInternalServerError)
		return
	}

	now := h.now()
	addons := req.Addons
	if addons == nil {
		addons = []string{}
	}

	order := models.Order{
		OrderNo:      orderNo,
		PlateNumber:  req.PlateNumber,
		VehicleType:  req.VehicleType,
		BaseService:  req.BaseService,
		BasePrice:    basePrice,
		Addons:       addons,
		PaymentMode:  req.PaymentMode,
		WithVacuum:   withVacuum,
		SixbShares:   shares.Business,
		WasherShares: shares.Washer,
		SSS:          billing.SSSFee,
		Vac:          vacFee,
		Less40:       billing.FixedDeduction,
		WasherName:   req.WasherName,
		InchargeName: claims.FullName,
		Shift:        string(shift.Current(now)),
		ShiftDate:    shift.DateString(now),
		Timestamp:    now,
	}

	id, err := h.orders.InsertOrder(r.Context(), order)
	if err != nil {
		log.WithError(err).Error("failed to insert order")
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}
	order.ID = id

	// Replication is best effort: a failed enqueue delays the copy but
	// never fails the order.
	if h.outbox != nil {
		if err := h.outbox.Enqueue(r.Context(), order); err != nil {
			log.WithError(err).WithField("order_id", id.Hex()).Warn("failed to enqueue order for replication")
		}
	}

	writeJSON(w, http.StatusCreated, models.AddOrderResponse{
		ID:           id.Hex(),
		OrderNo:      orderNo,
		SixbShares:   shares.Business,
		WasherShares: shares.Washer,
	})
}

// list returns orders, optionally filtered by date and shift.
func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if date := r.URL.Query().Get("date"); date != "" {
		filter["shift_date"] = date
	}
	if shiftLabel := r.URL.Query().Get("shift"); shiftLabel != "" {
		filter["shift"] = shiftLabel
	}

	orders, err := h.orders.FindOrders(r.Context(), filter)
	if err != nil {
		log.WithError(err).Error("failed to list orders")
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}
