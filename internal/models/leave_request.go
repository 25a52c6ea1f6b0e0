package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	DriverID    primitive.ObjectID  `json:"driver_id" bson:"driver_id"`
	StartDate   time.Time           `json:"start_date" bson:"start_date"`
	EndDate     time.Time           `json:"end_date" bson:"end_date"`
	Reason      string              `json:"reason" bson:"reason"`
	Status      LeaveStatus         `json:"status" bson:"status"`
	RequestedAt time.Time           `json:"requested_at" bson:"requested_at"`
	ReviewedAt  *time.Time          `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewedBy  *primitive.ObjectID `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	Comments    string              `json:"comments,omitempty" bson:"comments,omitempty"`
}
