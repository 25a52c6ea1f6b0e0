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

type rideRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewRideRepository(db *mongo.Database, cache services.CacheService) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
		cache:      cache,
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	if ride.RequestedAt.IsZero() {
		ride.RequestedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	if !ride.Status.Terminal() {
		r.cacheRide(ctx, ride)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	if ride := r.getRideFromCache(ctx, id.Hex()); ride != nil {
		return ride, nil
	}

	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: ride", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if !ride.Status.Terminal() {
		r.cacheRide(ctx, &ride)
	}

	return &ride, nil
}

// GetByIDForDriver scopes the lookup to rides owned by the driver.
// A ride belonging to someone else is indistinguishable from a missing
// one.
func (r *rideRepository) GetByIDForDriver(ctx context.Context, id, driverID primitive.ObjectID) (*models.Ride, error) {
	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "driver_id": driverID}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: ride", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ride for driver: %w", err)
	}

	return &ride, nil
}

func (r *rideRepository) Assign(ctx context.Context, id, driverID primitive.ObjectID) (*models.Ride, error) {
	now := time.Now().UTC()

	return r.transition(ctx,
		bson.M{"_id": id, "status": models.RideStatusRequested},
		bson.M{"$set": bson.M{
			"driver_id":   driverID,
			"status":      models.RideStatusAssigned,
			"assigned_at": now,
		}},
		"ride is not awaiting assignment",
	)
}

func (r *rideRepository) Start(ctx context.Context, id, driverID primitive.ObjectID, startKm int) (*models.Ride, error) {
	now := time.Now().UTC()

	return r.transition(ctx,
		bson.M{"_id": id, "driver_id": driverID, "status": models.RideStatusAssigned},
		bson.M{"$set": bson.M{
			"status":       models.RideStatusInProgress,
			"picked_up_at": now,
			"start_km":     startKm,
		}},
		"ride cannot be started",
	)
}

func (r *rideRepository) Complete(ctx context.Context, id, driverID primitive.ObjectID, endKm int, distance float64, actualMinutes int) (*models.Ride, error) {
	now := time.Now().UTC()

	return r.transition(ctx,
		bson.M{"_id": id, "driver_id": driverID, "status": models.RideStatusInProgress},
		bson.M{"$set": bson.M{
			"status":          models.RideStatusCompleted,
			"completed_at":    now,
			"end_km":          endKm,
			"distance":        distance,
			"actual_duration": actualMinutes,
		}},
		"ride is not in progress",
	)
}

func (r *rideRepository) Cancel(ctx context.Context, id primitive.ObjectID, cancelledBy string) (*models.Ride, error) {
	now := time.Now().UTC()

	return r.transition(ctx,
		bson.M{"_id": id, "status": bson.M{"$nin": []models.RideStatus{
			models.RideStatusCompleted,
			models.RideStatusCancelled,
		}}},
		bson.M{"$set": bson.M{
			"status":       models.RideStatusCancelled,
			"cancelled_at": now,
			"cancelled_by": cancelledBy,
		}},
		"ride is already finished",
	)
}

// transition performs a compare-and-set status change in one round
// trip. Losing a race surfaces as an invalid transition, never as a
// double write.
func (r *rideRepository) transition(ctx context.Context, filter, update bson.M, reason string) (*models.Ride, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ride models.Ride
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: %s", utils.ErrInvalidTransition, reason)
		}
		return nil, fmt.Errorf("failed to update ride status: %w", err)
	}

	r.invalidateRideCache(ctx, ride.ID.Hex())

	return &ride, nil
}

func (r *rideRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	return r.findRidesWithFilter(ctx, bson.M{}, params)
}

func (r *rideRepository) GetPending(ctx context.Context) ([]*models.Ride, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"status": models.RideStatusRequested},
		options.Find().SetSort(bson.D{{Key: "requested_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending rides: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRides(ctx, cursor)
}

func (r *rideRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	return r.findRidesWithFilter(ctx, bson.M{"driver_id": driverID}, params)
}

func (r *rideRepository) GetByPassenger(ctx context.Context, passengerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	return r.findRidesWithFilter(ctx, bson.M{"passenger_id": passengerID}, params)
}

func (r *rideRepository) GetAssignedToDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error) {
	filter := bson.M{
		"driver_id": driverID,
		"status": bson.M{"$in": []models.RideStatus{
			models.RideStatusAssigned,
			models.RideStatusInProgress,
		}},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "assigned_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find assigned rides: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeRides(ctx, cursor)
}

func (r *rideRepository) GetByDateRange(ctx context.Context, start, end time.Time, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	filter := bson.M{
		"requested_at": bson.M{
			"$gte": start,
			"$lte": end,
		},
	}
	return r.findRidesWithFilter(ctx, filter, params)
}

func (r *rideRepository) findRidesWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rides: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find rides: %w", err)
	}
	defer cursor.Close(ctx)

	rides, err := decodeRides(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}

	return rides, total, nil
}

func decodeRides(ctx context.Context, cursor *mongo.Cursor) ([]*models.Ride, error) {
	var rides []*models.Ride
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			return nil, fmt.Errorf("failed to decode ride: %w", err)
		}
		rides = append(rides, &ride)
	}
	return rides, nil
}

func (r *rideRepository) cacheRide(ctx context.Context, ride *models.Ride) {
	if r.cache != nil {
		key := utils.CacheRidePrefix + ride.ID.Hex()
		r.cache.Set(ctx, key, ride, 15*time.Minute)
	}
}

func (r *rideRepository) getRideFromCache(ctx context.Context, rideID string) *models.Ride {
	if r.cache == nil {
		return nil
	}

	var ride models.Ride
	if err := r.cache.Get(ctx, utils.CacheRidePrefix+rideID, &ride); err != nil {
		return nil
	}

	return &ride
}

func (r *rideRepository) invalidateRideCache(ctx context.Context, rideID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheRidePrefix+rideID)
	}
}
