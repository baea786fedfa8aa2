package db

import (
	"context"
	"errors"

	"github.com/cetadcco/carwash-pos/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SummaryCollection defines the interface for shift summary operations.
// Summaries are keyed by (incharge_name, date, shift); the unique index on
// that triple makes UpsertSummary replace-on-conflict.
type SummaryCollection interface {
	UpsertSummary(ctx context.Context, summary models.ShiftSummary) error
	FindSummary(ctx context.Context, date, shiftLabel string) (*models.ShiftSummary, error)
	FindSummaryByKey(ctx context.Context, incharge, date, shiftLabel string) (*models.ShiftSummary, error)
}

// MongoSummaryCollection implements SummaryCollection for MongoDB
type MongoSummaryCollection struct {
	Collection *mongo.Collection
}

// UpsertSummary writes the summary for its key, replacing any previous row.
// The write is a full replacement, never additive.
func (c *MongoSummaryCollection) UpsertSummary(ctx context.Context, summary models.ShiftSummary) error {
	filter := bson.M{
		"incharge_name": summary.InchargeName,
		"date":          summary.Date,
		"shift":         summary.Shift,
	}
	update := bson.M{"$set": bson.M{
		"incharge_name":      summary.InchargeName,
		"date":               summary.Date,
		"shift":              summary.Shift,
		"total_gross_sales":  summary.TotalGrossSales,
		"forty_x":            summary.FortyX,
		"total_addons":       summary.TotalAddons,
		"addons":             summary.Addons,
		"pos_payment":        summary.PosPayment,
		"total_vac":          summary.TotalVac,
		"total_sss":          summary.TotalSSS,
		"other_income":       summary.OtherIncome,
		"expenses":           summary.Expenses,
		"total_other_income": summary.TotalOtherIncome,
		"total_expenses":     summary.TotalExpenses,
		"grand_total":        summary.GrandTotal,
	}}
	_, err := c.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// FindSummary returns the stored summary for a date and shift, or
// ErrNotFound when none has been written yet.
func (c *MongoSummaryCollection) FindSummary(ctx context.Context, date, shiftLabel string) (*models.ShiftSummary, error) {
	var summary models.ShiftSummary
	err := c.Collection.FindOne(ctx, bson.M{"date": date, "shift": shiftLabel}).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}

// FindSummaryByKey returns the stored summary for a full key.
func (c *MongoSummaryCollection) FindSummaryByKey(ctx context.Context, incharge, date, shiftLabel string) (*models.ShiftSummary, error) {
	var summary models.ShiftSummary
	err := c.Collection.FindOne(ctx, bson.M{
		"incharge_name": incharge,
		"date":          date,
		"shift":         shiftLabel,
	}).Decode(&summary)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &summary, nil
}
