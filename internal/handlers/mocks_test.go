package handlers

import (
	"context"

	"github.com/cetadcco/carwash-pos/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderCollection is a mock implementation of db.OrderCollection
type MockOrderCollection struct {
	mock.Mock
}

func (m *MockOrderCollection) InsertOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockOrderCollection) FindOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderCollection) FindShiftOrders(ctx context.Context, incharge, shiftLabel, shiftDate string) ([]models.Order, error) {
	args := m.Called(ctx, incharge, shiftLabel, shiftDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockVehicleCollection is a mock implementation of db.VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByName(ctx context.Context, name string) (*models.Vehicle, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) AddonPrices(ctx context.Context, vehicleName string) (map[string]float64, error) {
	args := m.Called(ctx, vehicleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	args := m.Called(ctx, id, vehicle)
	return args.Error(0)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCounters is a mock implementation of db.Counters
type MockCounters struct {
	mock.Mock
}

func (m *MockCounters) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MockSummaryCollection is a mock implementation of db.SummaryCollection
type MockSummaryCollection struct {
	mock.Mock
}

func (m *MockSummaryCollection) UpsertSummary(ctx context.Context, summary models.ShiftSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryCollection) FindSummary(ctx context.Context, date, shiftLabel string) (*models.ShiftSummary, error) {
	args := m.Called(ctx, date, shiftLabel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShiftSummary), args.Error(1)
}

func (m *MockSummaryCollection) FindSummaryByKey(ctx context.Context, incharge, date, shiftLabel string) (*models.ShiftSummary, error) {
	args := m.Called(ctx, incharge, date, shiftLabel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShiftSummary), args.Error(1)
}
