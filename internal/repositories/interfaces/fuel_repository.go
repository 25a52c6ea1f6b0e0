package interfaces

import (
	"context"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FuelRepository interface {
	Create(ctx context.Context, entry *models.FuelEntry) error
	GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error)
}
