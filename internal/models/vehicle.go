package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseService is one wash package offered for a vehicle type.
type BaseService struct {
	Price float64 `bson:"price" json:"price"`
	Vac   bool    `bson:"vac" json:"vac"` // includes vacuum service
}

// Vehicle is a catalog entry: the price list for one vehicle type.
type Vehicle struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	VehicleName string                 `bson:"vehicle_name" json:"vehicle_name"`
	Bases       map[string]BaseService `bson:"bases" json:"bases"`
	Addons      map[string]float64     `bson:"addons" json:"addons"`
	CreatedAt   time.Time              `bson:"created_at" json:"created_at"`
}

// VehicleRequest represents a vehicle catalog create/update request
type VehicleRequest struct {
	VehicleName string                 `json:"vehicle_name" validate:"required"`
	Bases       map[string]BaseService `json:"bases" validate:"required,min=1"`
	Addons      map[string]float64     `json:"addons"`
}
