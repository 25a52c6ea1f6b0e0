package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"
)

// SeedDefaultUsers inserts one admin, one driver and one passenger
// account when the users collection is empty. Safe to call on every
// startup.
func SeedDefaultUsers(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("password")
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	adminID, err := insertUser(ctx, db, models.User{
		Name:      "Admin User",
		Email:     "admin@rideshare.com",
		Phone:     "+1234567890",
		Role:      models.RoleAdmin,
		Password:  hash,
		IsActive:  true,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	driverUserID, err := insertUser(ctx, db, models.User{
		Name:      "John Driver",
		Email:     "driver@rideshare.com",
		Phone:     "+1234567891",
		Role:      models.RoleDriver,
		Password:  hash,
		IsActive:  true,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	passengerUserID, err := insertUser(ctx, db, models.User{
		Name:      "Jane Passenger",
		Email:     "passenger@rideshare.com",
		Phone:     "+1234567892",
		Role:      models.RolePassenger,
		Password:  hash,
		IsActive:  true,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	if _, err := db.Collection("admins").InsertOne(ctx, models.Admin{
		UserID:      adminID,
		Permissions: []string{"all"},
		CreatedAt:   now,
	}); err != nil {
		return err
	}

	if _, err := db.Collection("drivers").InsertOne(ctx, models.Driver{
		UserID:           driverUserID,
		VehicleMake:      "Toyota",
		VehicleModel:     "Camry",
		VehicleYear:      2020,
		LicensePlate:     "ABC-123",
		VehicleColor:     "Silver",
		LicenseNumber:    "DL123456789",
		LicenseExpiry:    time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Rating:           4.8,
		TotalRides:       1250,
		IsOnline:         false,
		CurrentKmReading: 45230,
		LastStatusChange: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}); err != nil {
		return err
	}

	if _, err := db.Collection("passengers").InsertOne(ctx, models.Passenger{
		UserID:    passengerUserID,
		Rating:    5.0,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	log.Println("Seeded default admin, driver and passenger accounts")
	return nil
}

func insertUser(ctx context.Context, db *mongo.Database, user models.User) (primitive.ObjectID, error) {
	res, err := db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}
