package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/models"
	"github.com/cetadcco/carwash-pos/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSummaryHandler(orders *MockOrderCollection, vehicles *MockVehicleCollection, summaries *MockSummaryCollection) *SummaryHandler {
	svc := summary.NewService(orders, vehicles, summaries)
	h := NewSummaryHandler(svc, summaries)
	// fixed PM timestamp so default date/shift are deterministic
	h.now = func() time.Time {
		return time.Date(2025, time.March, 10, 19, 0, 0, 0, time.Local)
	}
	return h
}

func TestSummaryHandler_Update(t *testing.T) {
	t.Run("recompute with explicit key", func(t *testing.T) {
		orders := new(MockOrderCollection)
		vehicles := new(MockVehicleCollection)
		summaries := new(MockSummaryCollection)
		handler := newSummaryHandler(orders, vehicles, summaries)

		shiftOrders := []models.Order{
			{VehicleType: "Car", SixbShares: 144, Vac: 5},
			{VehicleType: "Car", SixbShares: 100},
		}
		orders.On("FindShiftOrders", mock.Anything, "Juan Dela Cruz", "AM", "2025-03-10").Return(shiftOrders, nil)
		vehicles.On("AddonPrices", mock.Anything, "Car").Return(map[string]float64{}, nil)
		summaries.On("UpsertSummary", mock.Anything, mock.Anything).Return(nil)

		payload := `{"date":"2025-03-10","shift":"AM","expenses":[{"description":"soap","amount":50}]}`
		req := withClaims(httptest.NewRequest("POST", "/api/update_summary", bytes.NewBufferString(payload)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Update(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.UpdateSummaryResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 244.0, resp.Summary.TotalGrossSales)
		assert.Equal(t, 80.0, resp.Summary.FortyX)
		assert.Equal(t, 50.0, resp.Summary.TotalExpenses)
		// 244 + 80 + 0 + 0 - 50 - 400 - 10 - 5
		assert.InDelta(t, 244+80-50-400-10-5, resp.Summary.GrandTotal, 1e-9)

		summaries.AssertExpectations(t)
	})

	t.Run("defaults to the current shift window", func(t *testing.T) {
		orders := new(MockOrderCollection)
		vehicles := new(MockVehicleCollection)
		summaries := new(MockSummaryCollection)
		handler := newSummaryHandler(orders, vehicles, summaries)

		orders.On("FindShiftOrders", mock.Anything, "Juan Dela Cruz", "PM", "2025-03-10").Return([]models.Order{{VehicleType: "Car", SixbShares: 50}}, nil)
		vehicles.On("AddonPrices", mock.Anything, "Car").Return(map[string]float64{}, nil)
		summaries.On("UpsertSummary", mock.Anything, mock.Anything).Return(nil)

		req := withClaims(httptest.NewRequest("POST", "/api/update_summary", bytes.NewBufferString(`{}`)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Update(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		orders.AssertExpectations(t)
	})

	t.Run("no orders yields success false", func(t *testing.T) {
		orders := new(MockOrderCollection)
		vehicles := new(MockVehicleCollection)
		summaries := new(MockSummaryCollection)
		handler := newSummaryHandler(orders, vehicles, summaries)

		orders.On("FindShiftOrders", mock.Anything, "Juan Dela Cruz", "AM", "2025-03-10").Return([]models.Order{}, nil)

		payload := `{"date":"2025-03-10","shift":"AM"}`
		req := withClaims(httptest.NewRequest("POST", "/api/update_summary", bytes.NewBufferString(payload)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Update(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.UpdateSummaryResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Nil(t, resp.Summary)

		summaries.AssertNotCalled(t, "UpsertSummary", mock.Anything, mock.Anything)
	})

	t.Run("non-numeric line item amount fails the whole update", func(t *testing.T) {
		orders := new(MockOrderCollection)
		vehicles := new(MockVehicleCollection)
		summaries := new(MockSummaryCollection)
		handler := newSummaryHandler(orders, vehicles, summaries)

		payload := `{"date":"2025-03-10","shift":"AM","other_income":[{"description":"soda","amount":"lots"}]}`
		req := withClaims(httptest.NewRequest("POST", "/api/update_summary", bytes.NewBufferString(payload)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Update(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		summaries.AssertNotCalled(t, "UpsertSummary", mock.Anything, mock.Anything)
		orders.AssertNotCalled(t, "FindShiftOrders", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSummaryHandler_Get(t *testing.T) {
	t.Run("stored summary", func(t *testing.T) {
		summaries := new(MockSummaryCollection)
		handler := newSummaryHandler(new(MockOrderCollection), new(MockVehicleCollection), summaries)

		stored := &models.ShiftSummary{
			InchargeName:    "Juan Dela Cruz",
			Date:            "2025-03-10",
			Shift:           "AM",
			TotalGrossSales: 294,
			GrandTotal:      -1,
		}
		summaries.On("FindSummary", mock.Anything, "2025-03-10", "AM").Return(stored, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/shift_summary/2025-03-10/AM", nil), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got models.ShiftSummary
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 294.0, got.TotalGrossSales)
	})

	t.Run("incharge filter narrows to the full key", func(t *testing.T) {
		summaries := new(MockSummaryCollection)
		handler := newSummaryHandler(new(MockOrderCollection), new(MockVehicleCollection), summaries)

		stored := &models.ShiftSummary{
			InchargeName: "Maria Santos",
			Date:         "2025-03-10",
			Shift:        "AM",
			GrandTotal:   120,
		}
		summaries.On("FindSummaryByKey", mock.Anything, "Maria Santos", "2025-03-10", "AM").Return(stored, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/shift_summary/2025-03-10/AM?incharge=Maria+Santos", nil), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got models.ShiftSummary
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Maria Santos", got.InchargeName)
		assert.Equal(t, 120.0, got.GrandTotal)

		summaries.AssertNotCalled(t, "FindSummary", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("absent summary returns null", func(t *testing.T) {
		summaries := new(MockSummaryCollection)
		handler := newSummaryHandler(new(MockOrderCollection), new(MockVehicleCollection), summaries)

		summaries.On("FindSummary", mock.Anything, "2025-03-11", "PM").Return(nil, db.ErrNotFound)

		req := withClaims(httptest.NewRequest("GET", "/api/shift_summary/2025-03-11/PM", nil), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null\n", w.Body.String())
	})

	t.Run("malformed path", func(t *testing.T) {
		handler := newSummaryHandler(new(MockOrderCollection), new(MockVehicleCollection), new(MockSummaryCollection))

		req := withClaims(httptest.NewRequest("GET", "/api/shift_summary/2025-03-10", nil), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Get(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
