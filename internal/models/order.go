package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is one wash record. Orders are append-only: once created they are
// never modified, and summaries are always re-derived from them.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNo      int64              `bson:"order_no" json:"order_no"`
	PlateNumber  string             `bson:"plate_number" json:"plate_number"`
	VehicleType  string             `bson:"vehicle_type" json:"vehicle_type"`
	BaseService  string             `bson:"base_service" json:"base_service"`
	BasePrice    float64            `bson:"base_price" json:"base_price"`
	Addons       []string           `bson:"addons" json:"addons"`
	PaymentMode  string             `bson:"payment_mode" json:"payment_mode"`
	WithVacuum   bool               `bson:"w_vac" json:"w_vac"`
	SixbShares   float64            `bson:"sixb_shares" json:"sixb_shares"`
	WasherShares float64            `bson:"washer_shares" json:"washer_shares"`
	SSS          float64            `bson:"sss" json:"sss"`
	Vac          float64            `bson:"vac" json:"vac"`
	Less40       float64            `bson:"less_40" json:"less_40"`
	WasherName   string             `bson:"washer_name" json:"washer_name"`
	InchargeName string             `bson:"incharge_name" json:"incharge_name"`
	Shift        string             `bson:"shift" json:"shift"`
	ShiftDate    string             `bson:"shift_date" json:"shift_date"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}

// AddOrderRequest represents an order submission. BasePrice is kept as a
// json.Number so that a non-numeric value is rejected instead of silently
// becoming zero.
type AddOrderRequest struct {
	VehicleType string      `json:"vehicle_type" validate:"required"`
	BaseService string      `json:"base_service" validate:"required"`
	BasePrice   json.Number `json:"base_price" validate:"required"`
	Addons      []string    `json:"addons"`
	PaymentMode string      `json:"payment_mode"`
	PlateNumber string      `json:"plate_number"`
	WasherName  string      `json:"washer_name"`
}

// AddOrderResponse is returned after a successful order submission.
type AddOrderResponse struct {
	ID           string  `json:"id"`
	OrderNo      int64   `json:"order_no"`
	SixbShares   float64 `json:"sixb_shares"`
	WasherShares float64 `json:"washer_shares"`
}
