package mongodb

import (
	"context"
	"fmt"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/repositories/interfaces"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type leaveRepository struct {
	collection *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) interfaces.LeaveRepository {
	return &leaveRepository{
		collection: db.Collection("leave_requests"),
	}
}

func (r *leaveRepository) Create(ctx context.Context, request *models.LeaveRequest) error {
	request.ID = primitive.NewObjectID()
	request.Status = models.LeaveStatusPending
	request.RequestedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}

	return nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: leave request", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}

	return &request, nil
}

func (r *leaveRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error) {
	return r.findWithFilter(ctx, bson.M{"driver_id": driverID}, params)
}

func (r *leaveRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error) {
	return r.findWithFilter(ctx, bson.M{}, params)
}

// Review is a compare-and-set on the pending status so two admins
// cannot both resolve the same request.
func (r *leaveRepository) Review(ctx context.Context, id primitive.ObjectID, status models.LeaveStatus, reviewerID primitive.ObjectID, comments string, at time.Time) (*models.LeaveRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var request models.LeaveRequest
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.LeaveStatusPending},
		bson.M{"$set": bson.M{
			"status":      status,
			"reviewed_at": at,
			"reviewed_by": reviewerID,
			"comments":    comments,
		}},
		opts,
	).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: leave request is not pending", utils.ErrInvalidTransition)
		}
		return nil, fmt.Errorf("failed to review leave request: %w", err)
	}

	return &request, nil
}

func (r *leaveRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find leave requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.LeaveRequest
	for cursor.Next(ctx) {
		var request models.LeaveRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, 0, fmt.Errorf("failed to decode leave request: %w", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, nil
}
