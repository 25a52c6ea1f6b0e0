package routes

import (
	"ridedispatch/internal/handlers"
	"ridedispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Account *handlers.AccountHandler
	Ride    *handlers.RideHandler
	Driver  *handlers.DriverHandler
	Fleet   *handlers.FleetHandler
}

// Setup mounts the full API surface on the given router group.
func Setup(r *gin.RouterGroup, h *Handlers, jwtSecret string) {
	setupAuthRoutes(r, h.Auth, jwtSecret)
	setupAccountRoutes(r, h.Account, jwtSecret)
	setupRideRoutes(r, h.Ride, jwtSecret)
	setupDriverRoutes(r, h.Account, h.Driver, jwtSecret)
	setupFleetRoutes(r, h.Fleet, jwtSecret)
}

func setupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/logout", authHandler.Logout)
	}
}

func setupAccountRoutes(r *gin.RouterGroup, accountHandler *handlers.AccountHandler, jwtSecret string) {
	users := r.Group("/users")
	users.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		users.POST("", accountHandler.CreateUser)
		users.GET("", accountHandler.ListUsers)
	}

	passengers := r.Group("/passengers")
	passengers.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		passengers.POST("", accountHandler.CreatePassenger)
		passengers.GET("", accountHandler.ListPassengers)
	}
}

func setupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler, jwtSecret string) {
	rides := r.Group("/rides")
	rides.Use(middleware.AuthRequired(jwtSecret))
	{
		rides.GET("", rideHandler.List)

		rides.POST("", middleware.PassengerRequired(), rideHandler.Request)

		rides.GET("/pending", middleware.AdminRequired(), rideHandler.Pending)
		rides.POST("/manual", middleware.AdminRequired(), rideHandler.CreateManual)
		rides.POST("/:id/assign", middleware.AdminRequired(), rideHandler.Assign)
		rides.POST("/:id/cancel", middleware.AdminRequired(), rideHandler.Cancel)

		rides.GET("/assigned", middleware.DriverRequired(), rideHandler.Assigned)
		rides.POST("/:id/start", middleware.DriverRequired(), rideHandler.Start)
		rides.POST("/:id/complete", middleware.DriverRequired(), rideHandler.Complete)
	}
}

func setupDriverRoutes(r *gin.RouterGroup, accountHandler *handlers.AccountHandler, driverHandler *handlers.DriverHandler, jwtSecret string) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.AuthRequired(jwtSecret))
	{
		drivers.POST("", middleware.AdminRequired(), accountHandler.CreateDriver)
		drivers.GET("", middleware.AdminRequired(), accountHandler.ListDrivers)

		drivers.GET("/me", middleware.DriverRequired(), accountHandler.MyDriverProfile)
		drivers.PUT("/me/status", middleware.DriverRequired(), driverHandler.SetStatus)
	}

	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthRequired(jwtSecret))
	{
		attendance.GET("", driverHandler.Attendance)
	}
}

func setupFleetRoutes(r *gin.RouterGroup, fleetHandler *handlers.FleetHandler, jwtSecret string) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		vehicles.POST("", fleetHandler.CreateVehicle)
		vehicles.GET("", fleetHandler.ListVehicles)
		vehicles.GET("/:id", fleetHandler.GetVehicle)
		vehicles.DELETE("/:id", fleetHandler.DeleteVehicle)
	}

	fuel := r.Group("/fuel-entries")
	fuel.Use(middleware.AuthRequired(jwtSecret))
	{
		fuel.POST("", fleetHandler.AddFuelEntry)
		fuel.GET("", fleetHandler.ListFuelEntries)
	}

	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthRequired(jwtSecret))
	{
		leaves.POST("", middleware.DriverRequired(), fleetHandler.RequestLeave)
		leaves.GET("", fleetHandler.ListLeaveRequests)
		leaves.PUT("/:id/review", middleware.AdminRequired(), fleetHandler.ReviewLeave)
	}
}
