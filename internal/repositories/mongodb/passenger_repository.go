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

type passengerRepository struct {
	collection *mongo.Collection
}

func NewPassengerRepository(db *mongo.Database) interfaces.PassengerRepository {
	return &passengerRepository{
		collection: db.Collection("passengers"),
	}
}

func (r *passengerRepository) Create(ctx context.Context, passenger *models.Passenger) error {
	passenger.ID = primitive.NewObjectID()
	passenger.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, passenger)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: passenger profile already exists for user", utils.ErrConflict)
		}
		return fmt.Errorf("failed to create passenger: %w", err)
	}

	return nil
}

func (r *passengerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Passenger, error) {
	var passenger models.Passenger
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&passenger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: passenger", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get passenger: %w", err)
	}

	return &passenger, nil
}

func (r *passengerRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Passenger, error) {
	var passenger models.Passenger
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&passenger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: passenger", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get passenger by user: %w", err)
	}

	return &passenger, nil
}

func (r *passengerRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Passenger, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count passengers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find passengers: %w", err)
	}
	defer cursor.Close(ctx)

	var passengers []*models.Passenger
	for cursor.Next(ctx) {
		var passenger models.Passenger
		if err := cursor.Decode(&passenger); err != nil {
			return nil, 0, fmt.Errorf("failed to decode passenger: %w", err)
		}
		passengers = append(passengers, &passenger)
	}

	return passengers, total, nil
}

func (r *passengerRepository) IncrementTotalRides(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"total_rides": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to increment passenger rides: %w", err)
	}

	return nil
}
