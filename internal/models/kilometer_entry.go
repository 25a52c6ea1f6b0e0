package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KilometerEntry is the odometer audit trail for a ride: opened when the
// driver starts the ride and closed on completion.
type KilometerEntry struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID    primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	RideID      primitive.ObjectID `json:"ride_id" bson:"ride_id"`
	StartKm     int                `json:"start_km" bson:"start_km"`
	EndKm       *int               `json:"end_km,omitempty" bson:"end_km,omitempty"`
	Date        time.Time          `json:"date" bson:"date"`
	IsCompleted bool               `json:"is_completed" bson:"is_completed"`
	CompletedAt *time.Time         `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}
