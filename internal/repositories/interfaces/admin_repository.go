package interfaces

import (
	"context"

	"ridedispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Admin, error)
}
