package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// DriverAttendance is the derived daily presence record for a driver.
// At most one record exists per (driver_id, date) pair; Date is always
// midnight UTC.
type DriverAttendance struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID   primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	Date       time.Time          `json:"date" bson:"date"`
	CheckIn    *time.Time         `json:"check_in,omitempty" bson:"check_in,omitempty"`
	CheckOut   *time.Time         `json:"check_out,omitempty" bson:"check_out,omitempty"`
	TotalHours float64            `json:"total_hours" bson:"total_hours"`
	Status     AttendanceStatus   `json:"status" bson:"status"`

	// Read-time join, never persisted.
	Driver *Driver `json:"driver,omitempty" bson:"-"`
}
