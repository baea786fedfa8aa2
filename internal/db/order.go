package db

import (
	"context"
	"fmt"

	"github.com/cetadcco/carwash-pos/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderCollection defines the interface for order database operations.
// Orders are append-only; there is no update or delete.
type OrderCollection interface {
	InsertOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error)
	FindOrders(ctx context.Context, filter bson.M) ([]models.Order, error)
	FindShiftOrders(ctx context.Context, incharge, shiftLabel, shiftDate string) ([]models.Order, error)
}

// MongoOrderCollection implements OrderCollection for MongoDB
type MongoOrderCollection struct {
	Collection *mongo.Collection
}

// InsertOrder appends a new order and returns its id.
func (c *MongoOrderCollection) InsertOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := c.Collection.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert order: %w", err)
	}
	return order.ID, nil
}

// FindOrders queries orders with an arbitrary filter, oldest first.
func (c *MongoOrderCollection) FindOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindShiftOrders returns the orders belonging to one summary key. The
// shift date is the structured bucket stamped on the order at creation, so
// matching is a plain equality, not a timestamp-prefix comparison.
func (c *MongoOrderCollection) FindShiftOrders(ctx context.Context, incharge, shiftLabel, shiftDate string) ([]models.Order, error) {
	return c.FindOrders(ctx, bson.M{
		"incharge_name": incharge,
		"shift":         shiftLabel,
		"shift_date":    shiftDate,
	})
}
