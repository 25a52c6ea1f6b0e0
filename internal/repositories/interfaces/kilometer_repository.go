package interfaces

import (
	"context"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KilometerRepository interface {
	Create(ctx context.Context, entry *models.KilometerEntry) error
	CloseForRide(ctx context.Context, rideID primitive.ObjectID, endKm int, at time.Time) error
	GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.KilometerEntry, int64, error)
}
