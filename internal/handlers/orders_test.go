package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cetadcco/carwash-pos/internal/middleware"
	"github.com/cetadcco/carwash-pos/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func withClaims(r *http.Request, claims *models.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, claims)
	return r.WithContext(ctx)
}

func inchargeClaims() *models.Claims {
	return &models.Claims{
		UserID:   primitive.NewObjectID().Hex(),
		Username: "incharge1",
		FullName: "Juan Dela Cruz",
		Role:     models.RoleIncharge,
		Shift:    "AM",
	}
}

func TestOrderHandler_Create(t *testing.T) {
	// a fixed mid-morning timestamp: AM shift, shift date == calendar date
	fixedNow := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.Local)

	t.Run("successful order", func(t *testing.T) {
		orders := new(MockOrderCollection)
		vehicles := new(MockVehicleCollection)
		counters := new(MockCounters)
		handler := NewOrderHandler(orders, vehicles, counters, nil)
		handler.now = func() time.Time { return fixedNow }

		vehicle := &models.Vehicle{
			VehicleName: "Car",
			Bases: map[string]models.BaseService{
				"Bodywash":             {Price: 200, Vac: false},
				"Bodywash with Vacuum": {Price: 250, Vac: true},
			},
			Addons: map[string]float64{"Wax": 80},
		}

		vehicles.On("AddonPrices", mock.Anything, "Car").Return(vehicle.Addons, nil)
		vehicles.On("FindVehicleByName", mock.Anything, "Car").Return(vehicle, nil)
		counters.On("Next", mock.Anything, "orders").Return(int64(42), nil)

		var inserted models.Order
		orders.On("InsertOrder", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.Order)
		}).Return(primitive.NewObjectID(), nil)

		payload := `{
			"vehicle_type": "Car",
			"base_service": "Bodywash",
			"base_price": 200,
			"addons": ["Wax"],
			"payment_mode": "cash",
			"plate_number": "ABC-123",
			"washer_name": "Pedro"
		}`
		req := withClaims(httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(payload)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Orders(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp models.AddOrderResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.OrderNo)
		assert.InDelta(t, 144, resp.SixbShares, 1e-9)
		assert.InDelta(t, 96, resp.WasherShares, 1e-9)

		assert.Equal(t, "Juan Dela Cruz", inserted.InchargeName)
		assert.Equal(t, "AM", inserted.Shift)
		assert.Equal(t, "2025-03-10", inserted.ShiftDate)
		assert.Equal(t, 2.0, inserted.SSS)
		assert.Equal(t, 0.0, inserted.Vac)
		assert.Equal(t, 40.0, inserted.Less40)
		assert.False(t, inserted.WithVacuum)

		orders.AssertExpectations(t)
		counters.AssertExpectations(t)
	})

	t.Run("vacuum base service carries the vacuum fee", func(t *testing.T) {
		orders := new(MockOrderCollection)
		vehicles := new(MockVehicleCollection)
		counters := new(MockCounters)
		handler := NewOrderHandler(orders, vehicles, counters, nil)
		handler.now = func() time.Time { return fixedNow }

		vehicle := &models.Vehicle{
			VehicleName: "Car",
			Bases:       map[string]models.BaseService{"Bodywash with Vacuum": {Price: 250, Vac: true}},
			Addons:      map[string]float64{},
		}

		vehicles.On("AddonPrices", mock.Anything, "Car").Return(vehicle.Addons, nil)
		vehicles.On("FindVehicleByName", mock.Anything, "Car").Return(vehicle, nil)
		counters.On("Next", mock.Anything, "orders").Return(int64(7), nil)

		var inserted models.Order
		orders.On("InsertOrder", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.Order)
		}).Return(primitive.NewObjectID(), nil)

		payload := `{"vehicle_type":"Car","base_service":"Bodywash with Vacuum","base_price":"250"}`
		req := withClaims(httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(payload)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Orders(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, inserted.WithVacuum)
		assert.Equal(t, 5.0, inserted.Vac)
		// base price arrived as a numeric string and still parses
		assert.Equal(t, 250.0, inserted.BasePrice)
	})

	t.Run("non-numeric base price is rejected", func(t *testing.T) {
		orders := new(MockOrderCollection)
		vehicles := new(MockVehicleCollection)
		counters := new(MockCounters)
		handler := NewOrderHandler(orders, vehicles, counters, nil)

		payload := `{"vehicle_type":"Car","base_service":"Bodywash","base_price":"two hundred"}`
		req := withClaims(httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(payload)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Orders(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		orders.AssertNotCalled(t, "InsertOrder", mock.Anything, mock.Anything)
	})

	t.Run("missing required fields", func(t *testing.T) {
		handler := NewOrderHandler(new(MockOrderCollection), new(MockVehicleCollection), new(MockCounters), nil)

		payload := `{"base_price": 200}`
		req := withClaims(httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(payload)), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Orders(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no session", func(t *testing.T) {
		handler := NewOrderHandler(new(MockOrderCollection), new(MockVehicleCollection), new(MockCounters), nil)

		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()

		handler.Orders(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("filters by date and shift", func(t *testing.T) {
		orders := new(MockOrderCollection)
		handler := NewOrderHandler(orders, new(MockVehicleCollection), new(MockCounters), nil)

		expected := []models.Order{{OrderNo: 1, Shift: "AM", ShiftDate: "2025-03-10"}}
		orders.On("FindOrders", mock.Anything, bson.M{"shift_date": "2025-03-10", "shift": "AM"}).Return(expected, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/orders?date=2025-03-10&shift=AM", nil), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Orders(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []models.Order
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].OrderNo)

		orders.AssertExpectations(t)
	})

	t.Run("no filters returns everything", func(t *testing.T) {
		orders := new(MockOrderCollection)
		handler := NewOrderHandler(orders, new(MockVehicleCollection), new(MockCounters), nil)

		orders.On("FindOrders", mock.Anything, bson.M{}).Return([]models.Order{}, nil)

		req := withClaims(httptest.NewRequest("GET", "/api/orders", nil), inchargeClaims())
		w := httptest.NewRecorder()

		handler.Orders(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}
