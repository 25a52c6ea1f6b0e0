package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver is the role profile attached 1:1 to a User with role "driver".
// The embedded vehicle descriptor fields predate the vehicle registry;
// when VehicleID is set the registry record is authoritative and the
// embedded fields are read-only migration residue.
type Driver struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID           primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	VehicleID        *primitive.ObjectID `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`
	VehicleMake      string              `json:"vehicle_make" bson:"vehicle_make"`
	VehicleModel     string              `json:"vehicle_model" bson:"vehicle_model"`
	VehicleYear      int                 `json:"vehicle_year" bson:"vehicle_year"`
	LicensePlate     string              `json:"license_plate" bson:"license_plate"`
	VehicleColor     string              `json:"vehicle_color" bson:"vehicle_color"`
	LicenseNumber    string              `json:"license_number" bson:"license_number" validate:"required"`
	LicenseExpiry    time.Time           `json:"license_expiry" bson:"license_expiry" validate:"required"`
	Rating           float64             `json:"rating" bson:"rating"`
	TotalRides       int64               `json:"total_rides" bson:"total_rides"`
	IsOnline         bool                `json:"is_online" bson:"is_online"`
	CurrentKmReading int                 `json:"current_km_reading" bson:"current_km_reading"`
	CurrentLatitude  *float64            `json:"current_latitude,omitempty" bson:"current_latitude,omitempty"`
	CurrentLongitude *float64            `json:"current_longitude,omitempty" bson:"current_longitude,omitempty"`
	LastStatusChange time.Time           `json:"last_status_change" bson:"last_status_change"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`

	// Read-time join, never persisted.
	User *User `json:"user,omitempty" bson:"-"`
}
