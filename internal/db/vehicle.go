package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cetadcco/carwash-pos/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("not found")

// VehicleCollection defines the interface for vehicle catalog operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) error
	FindVehicles(ctx context.Context) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindVehicleByName(ctx context.Context, name string) (*models.Vehicle, error)
	AddonPrices(ctx context.Context, vehicleName string) (map[string]float64, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// MongoVehicleCollection implements VehicleCollection for MongoDB
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle catalog entry.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	vehicle.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, vehicle)
	return err
}

// FindVehicles returns the whole catalog.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context) ([]models.Vehicle, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// FindVehicleByID finds a catalog entry by its id.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindVehicleByName finds a catalog entry by vehicle name.
func (c *MongoVehicleCollection) FindVehicleByName(ctx context.Context, name string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := c.Collection.FindOne(ctx, bson.M{"vehicle_name": name}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// AddonPrices returns the addon price list for a vehicle type. An unknown
// vehicle yields an empty map, never an error: pricing falls back to zero
// rather than failing the caller.
func (c *MongoVehicleCollection) AddonPrices(ctx context.Context, vehicleName string) (map[string]float64, error) {
	vehicle, err := c.FindVehicleByName(ctx, vehicleName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return map[string]float64{}, nil
		}
		return nil, err
	}
	if vehicle.Addons == nil {
		return map[string]float64{}, nil
	}
	return vehicle.Addons, nil
}

// UpdateVehicle replaces a catalog entry by its id.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"vehicle_name": vehicle.VehicleName,
		"bases":        vehicle.Bases,
		"addons":       vehicle.Addons,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVehicle removes a catalog entry by its id.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
