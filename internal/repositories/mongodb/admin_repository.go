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
)

type adminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) interfaces.AdminRepository {
	return &adminRepository{
		collection: db.Collection("admins"),
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *adminRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: admin", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by user: %w", err)
	}

	return &admin, nil
}
