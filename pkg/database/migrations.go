package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
	Down        func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	if err := m.createMigrationsCollection(); err != nil {
		return err
	}

	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			if err := migration.Up(m.db); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			if err := m.updateVersion(migration.Version); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d completed successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) Down(targetVersion int) error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version <= currentVersion && migration.Version > targetVersion {
			log.Printf("Reverting migration %d: %s", migration.Version, migration.Description)

			if err := migration.Down(m.db); err != nil {
				return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
			}

			previousVersion := targetVersion
			if i > 0 {
				previousVersion = m.migrations[i-1].Version
			}

			if err := m.updateVersion(previousVersion); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d reverted successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}

	for _, name := range collections {
		if name == "migrations" {
			return nil
		}
	}

	return m.db.CreateCollection(ctx, "migrations")
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users collection with indexes",
			Up:          createUsersIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("users").Drop(context.Background())
			},
		},
		{
			Version:     2,
			Description: "Create drivers and passengers collections with indexes",
			Up:          createProfileIndexes,
			Down: func(db *mongo.Database) error {
				if err := db.Collection("drivers").Drop(context.Background()); err != nil {
					return err
				}
				return db.Collection("passengers").Drop(context.Background())
			},
		},
		{
			Version:     3,
			Description: "Create rides collection with indexes",
			Up:          createRidesIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("rides").Drop(context.Background())
			},
		},
		{
			Version:     4,
			Description: "Create vehicles collection with indexes",
			Up:          createVehiclesIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("vehicles").Drop(context.Background())
			},
		},
		{
			Version:     5,
			Description: "Create attendance collection with unique daily index",
			Up:          createAttendanceIndexes,
			Down: func(db *mongo.Database) error {
				return db.Collection("driver_attendance").Drop(context.Background())
			},
		},
		{
			Version:     6,
			Description: "Create fuel, leave and kilometer log collections with indexes",
			Up:          createLogIndexes,
			Down: func(db *mongo.Database) error {
				for _, name := range []string{"fuel_entries", "leave_requests", "kilometer_entries"} {
					if err := db.Collection(name).Drop(context.Background()); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

func createUsersIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("users")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createProfileIndexes(db *mongo.Database) error {
	ctx := context.Background()

	driverIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "license_number", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "is_online", Value: 1}},
		},
	}
	if _, err := db.Collection("drivers").Indexes().CreateMany(ctx, driverIndexes); err != nil {
		return err
	}

	passengerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := db.Collection("passengers").Indexes().CreateMany(ctx, passengerIndexes)
	return err
}

func createRidesIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("rides")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "passenger_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "requested_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createVehiclesIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("vehicles")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "license_plate", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "license_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// The unique (driver_id, date) index backs idempotent check-in: a
// concurrent duplicate insert surfaces as a duplicate key error
// instead of a second row.
func createAttendanceIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("driver_attendance")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "driver_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "date", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createLogIndexes(db *mongo.Database) error {
	ctx := context.Background()

	fuelIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "date", Value: -1}},
		},
	}
	if _, err := db.Collection("fuel_entries").Indexes().CreateMany(ctx, fuelIndexes); err != nil {
		return err
	}

	leaveIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "requested_at", Value: -1}},
		},
	}
	if _, err := db.Collection("leave_requests").Indexes().CreateMany(ctx, leaveIndexes); err != nil {
		return err
	}

	kmIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "ride_id", Value: 1}},
		},
	}
	_, err := db.Collection("kilometer_entries").Indexes().CreateMany(ctx, kmIndexes)
	return err
}
