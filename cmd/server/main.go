package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridedispatch/internal/config"
	"ridedispatch/internal/handlers"
	"ridedispatch/internal/middleware"
	"ridedispatch/internal/repositories/mongodb"
	"ridedispatch/internal/services"
	"ridedispatch/pkg/cache"
	"ridedispatch/pkg/database"
	"ridedispatch/pkg/logger"
	"ridedispatch/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	if cfg.App.SeedData {
		if err := database.SeedDefaultUsers(db.Database); err != nil {
			appLogger.WithError(err).Fatal("Failed to seed default users")
		}
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache)

	userRepo := mongodb.NewUserRepository(db.Database, cacheService)
	driverRepo := mongodb.NewDriverRepository(db.Database, cacheService)
	passengerRepo := mongodb.NewPassengerRepository(db.Database)
	adminRepo := mongodb.NewAdminRepository(db.Database)
	rideRepo := mongodb.NewRideRepository(db.Database, cacheService)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database)
	attendanceRepo := mongodb.NewAttendanceRepository(db.Database)
	fuelRepo := mongodb.NewFuelRepository(db.Database)
	leaveRepo := mongodb.NewLeaveRepository(db.Database)
	kmRepo := mongodb.NewKilometerRepository(db.Database)

	authService := services.NewAuthService(userRepo, cacheService, cfg.Security.JWTSecret, cfg.Security.JWTAccessTokenTTL, appLogger)
	accountService := services.NewAccountService(userRepo, driverRepo, passengerRepo, adminRepo, vehicleRepo, appLogger)
	rideService := services.NewRideService(rideRepo, driverRepo, passengerRepo, userRepo, kmRepo, appLogger)
	presenceService := services.NewPresenceService(driverRepo, userRepo, attendanceRepo, appLogger)
	fleetService := services.NewFleetService(vehicleRepo, fuelRepo, leaveRepo, driverRepo, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())

	rateLimiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerMinute, cfg.Security.RateLimitPerMinute)
	router.Use(rateLimiter.Middleware())

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.WithError(err).Fatal("Invalid trusted proxies")
		}
	}

	v1 := router.Group("/api/v1")
	routes.Setup(v1, &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Account: handlers.NewAccountHandler(accountService),
		Ride:    handlers.NewRideHandler(rideService),
		Driver:  handlers.NewDriverHandler(presenceService),
		Fleet:   handlers.NewFleetHandler(fleetService),
	}, cfg.Security.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}

	appLogger.Info("Server stopped")
}
