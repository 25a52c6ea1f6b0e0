package interfaces

import (
	"context"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error)
	GetOnline(ctx context.Context) ([]*models.Driver, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Driver, error)

	// SetOnlineStatus always writes is_online, last_status_change and any
	// supplied location, reporting whether the stored value actually flipped.
	SetOnlineStatus(ctx context.Context, id primitive.ObjectID, online bool, lat, lng *float64) (bool, error)

	// CompleteRide advances the odometer and bumps the lifetime ride count.
	CompleteRide(ctx context.Context, id primitive.ObjectID, endKm int) error
}
