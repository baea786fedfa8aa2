package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LineItem is an ad-hoc income or expense entry attached to a shift summary.
type LineItem struct {
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// ShiftSummary is the materialized aggregate for one (incharge, date, shift)
// key. It is a cache over the orders, fully re-derivable at any time; the
// triple is unique and recomputing overwrites the previous row.
type ShiftSummary struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InchargeName     string             `bson:"incharge_name" json:"incharge_name"`
	Date             string             `bson:"date" json:"date"`
	Shift            string             `bson:"shift" json:"shift"`
	TotalGrossSales  float64            `bson:"total_gross_sales" json:"total_gross_sales"`
	FortyX           float64            `bson:"forty_x" json:"forty_x"`
	TotalAddons      float64            `bson:"total_addons" json:"total_addons"`
	Addons           map[string]float64 `bson:"addons" json:"addons"`
	PosPayment       float64            `bson:"pos_payment" json:"pos_payment"`
	TotalVac         float64            `bson:"total_vac" json:"total_vac"`
	TotalSSS         float64            `bson:"total_sss" json:"total_sss"`
	OtherIncome      []LineItem         `bson:"other_income" json:"other_income"`
	Expenses         []LineItem         `bson:"expenses" json:"expenses"`
	TotalOtherIncome float64            `bson:"total_other_income" json:"total_other_income"`
	TotalExpenses    float64            `bson:"total_expenses" json:"total_expenses"`
	GrandTotal       float64            `bson:"grand_total" json:"grand_total"`
}

// LineItemInput is a caller-supplied line item. Amount stays a json.Number
// so malformed values fail the whole update instead of corrupting the grand
// total.
type LineItemInput struct {
	Description string      `json:"description"`
	Amount      json.Number `json:"amount" validate:"required"`
}

// UpdateSummaryRequest represents a summary recompute request. Date and
// Shift default to the current shift window when omitted.
type UpdateSummaryRequest struct {
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Shift       string          `json:"shift" validate:"omitempty,oneof=AM PM"`
	OtherIncome []LineItemInput `json:"other_income"`
	Expenses    []LineItemInput `json:"expenses"`
}

// UpdateSummaryResponse wraps the recompute result. Success is false when
// the shift had no orders, which is an expected state rather than an error.
type UpdateSummaryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Summary *ShiftSummary `json:"summary,omitempty"`
}
