package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ColUsers         = "users"
	ColVehicles      = "vehicles"
	ColOrders        = "orders"
	ColOrdersReplica = "orders_replica"
	ColSummaries     = "shift_summaries"
	ColCounters      = "counters"
	ColCustomers     = "customers"
)

// Connect connects to MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the stores rely on. The summary
// key index is what makes the recompute upsert idempotent under races.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection(ColUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = db.Collection(ColVehicles).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "vehicle_name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("vehicles index: %w", err)
	}

	_, err = db.Collection(ColSummaries).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "incharge_name", Value: 1},
			{Key: "date", Value: 1},
			{Key: "shift", Value: 1},
		},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("shift_summaries index: %w", err)
	}

	_, err = db.Collection(ColCustomers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "plate_number", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return fmt.Errorf("customers index: %w", err)
	}

	_, err = db.Collection(ColOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "incharge_name", Value: 1},
			{Key: "shift_date", Value: 1},
			{Key: "shift", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("orders index: %w", err)
	}

	return nil
}
