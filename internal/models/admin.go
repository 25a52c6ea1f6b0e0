package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Admin struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Permissions []string           `json:"permissions" bson:"permissions"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
