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

type kilometerRepository struct {
	collection *mongo.Collection
}

func NewKilometerRepository(db *mongo.Database) interfaces.KilometerRepository {
	return &kilometerRepository{
		collection: db.Collection("kilometer_entries"),
	}
}

func (r *kilometerRepository) Create(ctx context.Context, entry *models.KilometerEntry) error {
	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create kilometer entry: %w", err)
	}

	return nil
}

func (r *kilometerRepository) CloseForRide(ctx context.Context, rideID primitive.ObjectID, endKm int, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"ride_id": rideID, "is_completed": false},
		bson.M{"$set": bson.M{
			"end_km":       endKm,
			"is_completed": true,
			"completed_at": at,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to close kilometer entry: %w", err)
	}

	return nil
}

func (r *kilometerRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.KilometerEntry, int64, error) {
	filter := bson.M{"driver_id": driverID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count kilometer entries: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find kilometer entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.KilometerEntry
	for cursor.Next(ctx) {
		var entry models.KilometerEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, 0, fmt.Errorf("failed to decode kilometer entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, total, nil
}
