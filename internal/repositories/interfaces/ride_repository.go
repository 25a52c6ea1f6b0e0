package interfaces

import (
	"context"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideRepository persists rides and performs the lifecycle transitions.
// Every transition is a single conditional update on the stored status,
// so two racing callers can never both succeed.
type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	GetByIDForDriver(ctx context.Context, id, driverID primitive.ObjectID) (*models.Ride, error)

	// Assign moves a requested ride to assigned for the given driver.
	Assign(ctx context.Context, id, driverID primitive.ObjectID) (*models.Ride, error)

	// Start moves an assigned ride owned by the driver to in_progress,
	// recording the odometer reading.
	Start(ctx context.Context, id, driverID primitive.ObjectID, startKm int) (*models.Ride, error)

	// Complete moves an in_progress ride owned by the driver to
	// completed with the computed distance and duration.
	Complete(ctx context.Context, id, driverID primitive.ObjectID, endKm int, distance float64, actualMinutes int) (*models.Ride, error)

	// Cancel moves a ride out of any non-terminal state.
	Cancel(ctx context.Context, id primitive.ObjectID, cancelledBy string) (*models.Ride, error)

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Ride, int64, error)
	GetPending(ctx context.Context) ([]*models.Ride, error)
	GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error)
	GetByPassenger(ctx context.Context, passengerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error)
	GetAssignedToDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error)
	GetByDateRange(ctx context.Context, start, end time.Time, params *utils.PaginationParams) ([]*models.Ride, int64, error)
}
