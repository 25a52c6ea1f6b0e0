package mongodb

import (
	"context"
	"fmt"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/repositories/interfaces"
	"ridedispatch/internal/services"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type driverRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewDriverRepository(db *mongo.Database, cache services.CacheService) interfaces.DriverRepository {
	return &driverRepository{
		collection: db.Collection("drivers"),
		cache:      cache,
	}
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	driver.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	driver.CreatedAt = now
	driver.UpdatedAt = now
	driver.LastStatusChange = now

	_, err := r.collection.InsertOne(ctx, driver)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: driver profile already exists for user", utils.ErrConflict)
		}
		return fmt.Errorf("failed to create driver: %w", err)
	}

	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	if driver := r.getDriverFromCache(ctx, id.Hex()); driver != nil {
		return driver, nil
	}

	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: driver", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	r.cacheDriver(ctx, &driver)

	return &driver, nil
}

func (r *driverRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error) {
	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: driver", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get driver by user: %w", err)
	}

	return &driver, nil
}

func (r *driverRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}

	r.invalidateDriverCache(ctx, id.Hex())

	return nil
}

func (r *driverRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	return r.findDriversWithFilter(ctx, bson.M{}, params)
}

func (r *driverRepository) GetOnline(ctx context.Context) ([]*models.Driver, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_online": true}, options.Find().SetSort(bson.D{{Key: "last_status_change", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find online drivers: %w", err)
	}
	defer cursor.Close(ctx)

	var drivers []*models.Driver
	for cursor.Next(ctx) {
		var driver models.Driver
		if err := cursor.Decode(&driver); err != nil {
			return nil, fmt.Errorf("failed to decode driver: %w", err)
		}
		drivers = append(drivers, &driver)
	}

	return drivers, nil
}

func (r *driverRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Driver, error) {
	drivers := make(map[primitive.ObjectID]*models.Driver, len(ids))
	if len(ids) == 0 {
		return drivers, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find drivers: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var driver models.Driver
		if err := cursor.Decode(&driver); err != nil {
			return nil, fmt.Errorf("failed to decode driver: %w", err)
		}
		drivers[driver.ID] = &driver
	}

	return drivers, nil
}

// SetOnlineStatus always writes the flag, the timestamp and any
// location sent with the signal, even when the status repeats. The
// returned bool reports whether the stored value actually flipped.
func (r *driverRepository) SetOnlineStatus(ctx context.Context, id primitive.ObjectID, online bool, lat, lng *float64) (bool, error) {
	updates := bson.M{
		"is_online":          online,
		"last_status_change": time.Now().UTC(),
		"updated_at":         time.Now().UTC(),
	}
	if lat != nil && lng != nil {
		updates["current_latitude"] = *lat
		updates["current_longitude"] = *lng
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var prior models.Driver
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&prior)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, fmt.Errorf("%w: driver", utils.ErrNotFound)
		}
		return false, fmt.Errorf("failed to update driver status: %w", err)
	}

	r.invalidateDriverCache(ctx, id.Hex())

	return prior.IsOnline != online, nil
}

func (r *driverRepository) CompleteRide(ctx context.Context, id primitive.ObjectID, endKm int) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{"current_km_reading": endKm, "updated_at": time.Now().UTC()},
			"$inc": bson.M{"total_rides": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to record completed ride on driver: %w", err)
	}

	r.invalidateDriverCache(ctx, id.Hex())

	return nil
}

func (r *driverRepository) findDriversWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count drivers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find drivers: %w", err)
	}
	defer cursor.Close(ctx)

	var drivers []*models.Driver
	for cursor.Next(ctx) {
		var driver models.Driver
		if err := cursor.Decode(&driver); err != nil {
			return nil, 0, fmt.Errorf("failed to decode driver: %w", err)
		}
		drivers = append(drivers, &driver)
	}

	return drivers, total, nil
}

func (r *driverRepository) cacheDriver(ctx context.Context, driver *models.Driver) {
	if r.cache != nil {
		key := utils.CacheDriverPrefix + driver.ID.Hex()
		r.cache.Set(ctx, key, driver, 15*time.Minute)
	}
}

func (r *driverRepository) getDriverFromCache(ctx context.Context, driverID string) *models.Driver {
	if r.cache == nil {
		return nil
	}

	var driver models.Driver
	if err := r.cache.Get(ctx, utils.CacheDriverPrefix+driverID, &driver); err != nil {
		return nil
	}

	return &driver
}

func (r *driverRepository) invalidateDriverCache(ctx context.Context, driverID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheDriverPrefix+driverID)
	}
}
