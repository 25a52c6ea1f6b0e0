package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleDriver    UserRole = "driver"
	RolePassenger UserRole = "passenger"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleDriver, RolePassenger:
		return true
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Phone     string             `json:"phone" bson:"phone" validate:"required"`
	Role      UserRole           `json:"role" bson:"role" validate:"required"`
	Password  string             `json:"-" bson:"password"`
	Avatar    string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
