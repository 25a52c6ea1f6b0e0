package interfaces

import (
	"context"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceRepository keeps at most one record per driver per UTC day.
type AttendanceRepository interface {
	// CheckIn upserts the day's record with the first check-in time. A
	// record that already has a check-in is left untouched; one created
	// without a check-in gets it filled in.
	CheckIn(ctx context.Context, driverID primitive.ObjectID, date, at time.Time) error

	// CheckOut stamps check_out and derives total_hours for a record
	// that has a check-in but no check-out yet.
	CheckOut(ctx context.Context, driverID primitive.ObjectID, date, at time.Time) error

	GetByDriverAndDate(ctx context.Context, driverID primitive.ObjectID, date time.Time) (*models.DriverAttendance, error)
	GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error)

	// Find filters on whichever of driverID, start and end are non-nil;
	// all given parts combine.
	Find(ctx context.Context, driverID *primitive.ObjectID, start, end *time.Time, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error)
}
