package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// Customer is a repeat customer identified by plate number.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlateNumber string             `bson:"plate_number" json:"plate_number"`
	Name        string             `bson:"name" json:"name"`
	VehicleType string             `bson:"vehicle_type" json:"vehicle_type"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// CustomerRequest represents a customer create/update request
type CustomerRequest struct {
	PlateNumber string `json:"plate_number" validate:"required"`
	Name        string `json:"name" validate:"required"`
	VehicleType string `json:"vehicle_type"`
	Phone       string `json:"phone"`
}
