package interfaces

import (
	"context"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *models.Passenger) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Passenger, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Passenger, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Passenger, int64, error)
	IncrementTotalRides(ctx context.Context, id primitive.ObjectID) error
}
