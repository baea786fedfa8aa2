package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Counters hands out sequential display numbers (order slips are numbered
// for the printed receipt, independent of the Mongo object id).
type Counters interface {
	Next(ctx context.Context, name string) (int64, error)
}

// MongoCounters implements Counters on a counters collection with documents
// of the form {_id: <name>, seq: <n>}.
type MongoCounters struct {
	Collection *mongo.Collection
}

// Next atomically increments and returns the sequence for name, creating it
// at 1 on first use.
func (c *MongoCounters) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", name, err)
	}
	return doc.Seq, nil
}
