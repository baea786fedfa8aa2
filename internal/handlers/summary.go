package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cetadcco/carwash-pos/internal/billing"
	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/middleware"
	"github.com/cetadcco/carwash-pos/internal/models"
	"github.com/cetadcco/carwash-pos/internal/shift"
	"github.com/cetadcco/carwash-pos/internal/summary"
	log "github.com/sirupsen/logrus"
)

// SummaryHandler handles shift summary recomputes and reads.
type SummaryHandler struct {
	service   *summary.Service
	summaries db.SummaryCollection
	now       func() time.Time
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(service *summary.Service, summaries db.SummaryCollection) *SummaryHandler {
	return &SummaryHandler{
		service:   service,
		summaries: summaries,
		now:       time.Now,
	}
}

// Update recomputes the summary for the caller's current (or requested)
// shift, folding in any ad-hoc income and expense line items.
func (h *SummaryHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	var req models.UpdateSummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := h.now()
	date := req.Date
	if date == "" {
		date = shift.DateString(now)
	}
	shiftLabel := req.Shift
	if shiftLabel == "" {
		shiftLabel = string(shift.Current(now))
	}

	// A malformed amount fails the whole update; a summary with a
	// silently-zeroed line item would misstate the grand total.
	otherIncome, err := parseLineItems(req.OtherIncome)
	if err != nil {
		http.Error(w, "Invalid other income amount", http.StatusBadRequest)
		return
	}
	expenses, err := parseLineItems(req.Expenses)
	if err != nil {
		http.Error(w, "Invalid expense amount", http.StatusBadRequest)
		return
	}

	result, err := h.service.Recompute(r.Context(), claims.FullName, date, shiftLabel, otherIncome, expenses)
	if err != nil {
		if errors.Is(err, summary.ErrNoOrders) {
			writeJSON(w, http.StatusOK, models.UpdateSummaryResponse{
				Success: false,
				Message: "No orders found for this shift",
			})
			return
		}
		log.WithError(err).Error("failed to recompute summary")
		http.Error(w, "Failed to update summary", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.UpdateSummaryResponse{
		Success: true,
		Summary: result,
	})
}

// Get serves /api/shift_summary/{date}/{shift}, returning the stored
// aggregate or null when none exists. An `incharge` query parameter narrows
// the lookup to that incharge's summary key.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/shift_summary/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		http.Error(w, "Expected /api/shift_summary/{date}/{shift}", http.StatusBadRequest)
		return
	}
	date, shiftLabel := parts[0], parts[1]

	var (
		stored *models.ShiftSummary
		err    error
	)
	if incharge := r.URL.Query().Get("incharge"); incharge != "" {
		stored, err = h.summaries.FindSummaryByKey(r.Context(), incharge, date, shiftLabel)
	} else {
		stored, err = h.summaries.FindSummary(r.Context(), date, shiftLabel)
	}
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		log.WithError(err).Error("failed to load summary")
		http.Error(w, "Failed to load summary", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

// parseLineItems converts caller-supplied line items, rejecting any
// non-numeric amount.
func parseLineItems(inputs []models.LineItemInput) ([]models.LineItem, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	items := make([]models.LineItem, 0, len(inputs))
	for _, in := range inputs {
		amount, err := billing.ParseAmount(in.Amount)
		if err != nil {
			return nil, err
		}
		items = append(items, models.LineItem{
			Description: in.Description,
			Amount:      amount,
		})
	}
	return items, nil
}
