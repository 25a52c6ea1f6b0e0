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

type fuelRepository struct {
	collection *mongo.Collection
}

func NewFuelRepository(db *mongo.Database) interfaces.FuelRepository {
	return &fuelRepository{
		collection: db.Collection("fuel_entries"),
	}
}

func (r *fuelRepository) Create(ctx context.Context, entry *models.FuelEntry) error {
	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create fuel entry: %w", err)
	}

	return nil
}

func (r *fuelRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error) {
	return r.findWithFilter(ctx, bson.M{"driver_id": driverID}, params)
}

func (r *fuelRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error) {
	return r.findWithFilter(ctx, bson.M{}, params)
}

func (r *fuelRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count fuel entries: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find fuel entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.FuelEntry
	for cursor.Next(ctx) {
		var entry models.FuelEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, 0, fmt.Errorf("failed to decode fuel entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, total, nil
}
