package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string

const (
	RideStatusRequested  RideStatus = "requested"
	RideStatusAssigned   RideStatus = "assigned"
	RideStatusAccepted   RideStatus = "accepted"
	RideStatusPickingUp  RideStatus = "picking_up"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// Terminal reports whether no further transition can leave the status.
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// Ride is the central workflow entity. Each lifecycle transition
// overwrites Status plus exactly one of the nullable timestamps.
type Ride struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PassengerID      primitive.ObjectID  `json:"passenger_id" bson:"passenger_id" validate:"required"`
	DriverID         *primitive.ObjectID `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	Status           RideStatus          `json:"status" bson:"status"`
	PickupLatitude   float64             `json:"pickup_latitude" bson:"pickup_latitude"`
	PickupLongitude  float64             `json:"pickup_longitude" bson:"pickup_longitude"`
	PickupAddress    string              `json:"pickup_address" bson:"pickup_address"`
	DropoffLatitude  float64             `json:"dropoff_latitude" bson:"dropoff_latitude"`
	DropoffLongitude float64             `json:"dropoff_longitude" bson:"dropoff_longitude"`
	DropoffAddress   string              `json:"dropoff_address" bson:"dropoff_address"`
	RequestedAt      time.Time           `json:"requested_at" bson:"requested_at"`
	AssignedAt       *time.Time          `json:"assigned_at,omitempty" bson:"assigned_at,omitempty"`
	AcceptedAt       *time.Time          `json:"accepted_at,omitempty" bson:"accepted_at,omitempty"`
	PickedUpAt       *time.Time          `json:"picked_up_at,omitempty" bson:"picked_up_at,omitempty"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CancelledAt      *time.Time          `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CancelledBy      string              `json:"cancelled_by,omitempty" bson:"cancelled_by,omitempty"`
	Distance         float64             `json:"distance" bson:"distance"`
	EstimatedMinutes int                 `json:"estimated_duration" bson:"estimated_duration"`
	ActualMinutes    *int                `json:"actual_duration,omitempty" bson:"actual_duration,omitempty"`
	StartKm          *int                `json:"start_km,omitempty" bson:"start_km,omitempty"`
	EndKm            *int                `json:"end_km,omitempty" bson:"end_km,omitempty"`

	// Read-time joins, never persisted.
	Driver    *Driver    `json:"driver,omitempty" bson:"-"`
	Passenger *Passenger `json:"passenger,omitempty" bson:"-"`
}
