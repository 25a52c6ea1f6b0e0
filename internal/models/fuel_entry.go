package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FuelEntrySource string

const (
	FuelAddedByDriver FuelEntrySource = "driver"
	FuelAddedByAdmin  FuelEntrySource = "admin"
)

// FuelEntry is an append-only refuelling log record.
type FuelEntry struct {
	ID       primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	DriverID primitive.ObjectID  `json:"driver_id" bson:"driver_id"`
	Amount   float64             `json:"amount" bson:"amount"` // liters
	Cost     float64             `json:"cost" bson:"cost"`
	Date     time.Time           `json:"date" bson:"date"`
	Location string              `json:"location" bson:"location"`
	AddedBy  FuelEntrySource     `json:"added_by" bson:"added_by"`
	AdminID  *primitive.ObjectID `json:"admin_id,omitempty" bson:"admin_id,omitempty"`

	// Read-time join, never persisted.
	Driver *Driver `json:"driver,omitempty" bson:"-"`
}
