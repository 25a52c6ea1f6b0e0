package handlers

import (
	"ridedispatch/internal/models"
	"ridedispatch/internal/services"
	"ridedispatch/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideHandler struct {
	rideService services.RideService
}

func NewRideHandler(rideService services.RideService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
	}
}

// Request opens a new ride for the calling passenger.
func (h *RideHandler) Request(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.RequestRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ride, err := h.rideService.Request(c.Request.Context(), userID, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Ride requested", ride)
}

// CreateManual opens a ride already bound to a driver on behalf of a
// passenger.
func (h *RideHandler) CreateManual(c *gin.Context) {
	var request services.ManualRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ride, err := h.rideService.CreateManual(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Ride created", ride)
}

type assignRideRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
}

// Assign binds a driver to a requested ride.
func (h *RideHandler) Assign(c *gin.Context) {
	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride id")
		return
	}

	var request assignRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driverID, err := primitive.ObjectIDFromHex(request.DriverID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid driver id")
		return
	}

	ride, err := h.rideService.Assign(c.Request.Context(), rideID, driverID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride assigned", ride)
}

type startRideRequest struct {
	StartKm int `json:"start_km"`
}

// Start moves an assigned ride into progress, recording the odometer.
func (h *RideHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride id")
		return
	}

	var request startRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ride, err := h.rideService.Start(c.Request.Context(), userID, rideID, request.StartKm)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride started", ride)
}

type completeRideRequest struct {
	EndKm int `json:"end_km"`
}

// Complete closes an in-progress ride.
func (h *RideHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride id")
		return
	}

	var request completeRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ride, err := h.rideService.Complete(c.Request.Context(), userID, rideID, request.EndKm)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride completed", ride)
}

// Cancel terminates a non-terminal ride.
func (h *RideHandler) Cancel(c *gin.Context) {
	rideID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ride id")
		return
	}

	ride, err := h.rideService.Cancel(c.Request.Context(), rideID, string(currentUserRole(c)))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride cancelled", ride)
}

// List returns rides scoped to the caller: admins see everything,
// drivers and passengers see their own history.
func (h *RideHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

	var (
		rides []*models.Ride
		total int64
		err   error
	)

	switch currentUserRole(c) {
	case models.RoleAdmin:
		rides, total, err = h.rideService.List(c.Request.Context(), params)
	case models.RoleDriver:
		rides, total, err = h.rideService.ForDriver(c.Request.Context(), userID, params)
	case models.RolePassenger:
		rides, total, err = h.rideService.ForPassenger(c.Request.Context(), userID, params)
	default:
		utils.ForbiddenResponse(c)
		return
	}
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides", rides, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// Pending lists rides still waiting for a driver.
func (h *RideHandler) Pending(c *gin.Context) {
	rides, err := h.rideService.Pending(c.Request.Context())
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Pending rides", rides)
}

// Assigned lists the rides currently assigned to the calling driver.
func (h *RideHandler) Assigned(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	rides, err := h.rideService.AssignedToDriver(c.Request.Context(), userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Assigned rides", rides)
}
