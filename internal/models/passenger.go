package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Passenger struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Rating     float64            `json:"rating" bson:"rating"`
	TotalRides int64              `json:"total_rides" bson:"total_rides"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`

	// Read-time join, never persisted.
	User *User `json:"user,omitempty" bson:"-"`
}
