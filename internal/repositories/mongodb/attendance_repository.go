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

type attendanceRepository struct {
	collection *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) interfaces.AttendanceRepository {
	return &attendanceRepository{
		collection: db.Collection("driver_attendance"),
	}
}

// CheckIn upserts the daily record. The filter only matches a record
// without a check-in, so a missing record is created, a check-in-less
// one is repaired, and one that already has a check-in falls through
// to an insert attempt that the unique (driver_id, date) index rejects
// with a duplicate key error, which is the documented no-op.
func (r *attendanceRepository) CheckIn(ctx context.Context, driverID primitive.ObjectID, date, at time.Time) error {
	filter := bson.M{
		"driver_id": driverID,
		"date":      date,
		"check_in":  nil,
	}

	update := bson.M{
		"$set": bson.M{
			"check_in": at,
			"status":   models.AttendancePresent,
		},
		"$setOnInsert": bson.M{
			"_id":         primitive.NewObjectID(),
			"total_hours": 0.0,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to check in driver: %w", err)
	}

	return nil
}

// CheckOut uses an aggregation pipeline update so the elapsed hours
// are derived from the stored check_in in the same write. Records
// already checked out do not match the filter and stay untouched.
func (r *attendanceRepository) CheckOut(ctx context.Context, driverID primitive.ObjectID, date, at time.Time) error {
	filter := bson.M{
		"driver_id": driverID,
		"date":      date,
		"check_in":  bson.M{"$ne": nil},
		"check_out": nil,
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"check_out": at,
			"total_hours": bson.M{
				"$divide": []interface{}{
					bson.M{"$subtract": []interface{}{at, "$check_in"}},
					1000 * 60 * 60,
				},
			},
		}}},
	}

	_, err := r.collection.UpdateOne(ctx, filter, pipeline)
	if err != nil {
		return fmt.Errorf("failed to check out driver: %w", err)
	}

	return nil
}

func (r *attendanceRepository) GetByDriverAndDate(ctx context.Context, driverID primitive.ObjectID, date time.Time) (*models.DriverAttendance, error) {
	var record models.DriverAttendance
	err := r.collection.FindOne(ctx, bson.M{"driver_id": driverID, "date": date}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: attendance record", utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &record, nil
}

func (r *attendanceRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error) {
	return r.findWithFilter(ctx, bson.M{"driver_id": driverID}, params)
}

// Find combines whichever filter parts the caller supplied: a driver
// constraint and a date range narrow the same query together.
func (r *attendanceRepository) Find(ctx context.Context, driverID *primitive.ObjectID, start, end *time.Time, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error) {
	filter := bson.M{}
	if driverID != nil {
		filter["driver_id"] = *driverID
	}

	dateFilter := bson.M{}
	if start != nil {
		dateFilter["$gte"] = *start
	}
	if end != nil {
		dateFilter["$lte"] = *end
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	return r.findWithFilter(ctx, filter, params)
}

func (r *attendanceRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find attendance records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.DriverAttendance
	for cursor.Next(ctx) {
		var record models.DriverAttendance
		if err := cursor.Decode(&record); err != nil {
			return nil, 0, fmt.Errorf("failed to decode attendance record: %w", err)
		}
		records = append(records, &record)
	}

	return records, total, nil
}
