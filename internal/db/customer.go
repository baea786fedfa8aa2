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

// CustomerCollection defines the interface for customer database operations
type CustomerCollection interface {
	InsertCustomer(ctx context.Context, customer models.Customer) error
	FindCustomers(ctx context.Context) ([]models.Customer, error)
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	FindCustomerByPlate(ctx context.Context, plate string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, customer models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

// MongoCustomerCollection implements CustomerCollection for MongoDB
type MongoCustomerCollection struct {
	Collection *mongo.Collection
}

// InsertCustomer inserts a new customer.
func (c *MongoCustomerCollection) InsertCustomer(ctx context.Context, customer models.Customer) error {
	customer.CreatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, customer)
	return err
}

// FindCustomers returns all customers.
func (c *MongoCustomerCollection) FindCustomers(ctx context.Context) ([]models.Customer, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// FindCustomerByID finds a customer by their ID.
func (c *MongoCustomerCollection) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer ID: %w", err)
	}

	var customer models.Customer
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindCustomerByPlate finds a customer by plate number.
func (c *MongoCustomerCollection) FindCustomerByPlate(ctx context.Context, plate string) (*models.Customer, error) {
	var customer models.Customer
	err := c.Collection.FindOne(ctx, bson.M{"plate_number": plate}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// UpdateCustomer updates a customer by their ID.
func (c *MongoCustomerCollection) UpdateCustomer(ctx context.Context, id string, customer models.Customer) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer ID: %w", err)
	}

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"plate_number": customer.PlateNumber,
		"name":         customer.Name,
		"vehicle_type": customer.VehicleType,
		"phone":        customer.Phone,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCustomer deletes a customer by their ID.
func (c *MongoCustomerCollection) DeleteCustomer(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid customer ID: %w", err)
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
