package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is a registry record independent of any driver assignment.
type Vehicle struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Make          string             `json:"vehicle_make" bson:"vehicle_make" validate:"required"`
	Model         string             `json:"vehicle_model" bson:"vehicle_model" validate:"required"`
	Year          int                `json:"vehicle_year" bson:"vehicle_year" validate:"required"`
	LicensePlate  string             `json:"license_plate" bson:"license_plate" validate:"required"`
	Color         string             `json:"vehicle_color" bson:"vehicle_color" validate:"required"`
	LicenseNumber string             `json:"license_number" bson:"license_number" validate:"required"`
	LicenseExpiry time.Time          `json:"license_expiry" bson:"license_expiry"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
