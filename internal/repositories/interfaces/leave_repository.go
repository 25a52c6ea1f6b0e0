package interfaces

import (
	"context"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveRepository interface {
	Create(ctx context.Context, request *models.LeaveRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error)
	GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error)

	// Review resolves a pending request. A request that is no longer
	// pending cannot be reviewed again.
	Review(ctx context.Context, id primitive.ObjectID, status models.LeaveStatus, reviewerID primitive.ObjectID, comments string, at time.Time) (*models.LeaveRequest, error)
}
