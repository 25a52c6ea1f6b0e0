package handlers

import (
	"ridedispatch/internal/services"
	"ridedispatch/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FleetHandler struct {
	fleetService services.FleetService
}

func NewFleetHandler(fleetService services.FleetService) *FleetHandler {
	return &FleetHandler{
		fleetService: fleetService,
	}
}

// CreateVehicle registers a vehicle in the fleet registry.
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	var request services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	vehicle, err := h.fleetService.CreateVehicle(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Vehicle registered", vehicle)
}

func (h *FleetHandler) GetVehicle(c *gin.Context) {
	vehicleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle id")
		return
	}

	vehicle, err := h.fleetService.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle", vehicle)
}

func (h *FleetHandler) ListVehicles(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	vehicles, total, err := h.fleetService.ListVehicles(c.Request.Context(), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Vehicles", vehicles, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *FleetHandler) DeleteVehicle(c *gin.Context) {
	vehicleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid vehicle id")
		return
	}

	if err := h.fleetService.DeleteVehicle(c.Request.Context(), vehicleID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Vehicle deleted", nil)
}

// AddFuelEntry logs a refuel, scoped by the caller's role.
func (h *FleetHandler) AddFuelEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.AddFuelEntryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	entry, err := h.fleetService.AddFuelEntry(c.Request.Context(), userID, currentUserRole(c), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Fuel entry added", entry)
}

func (h *FleetHandler) ListFuelEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

	entries, total, err := h.fleetService.ListFuelEntries(c.Request.Context(), userID, currentUserRole(c), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Fuel entries", entries, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// RequestLeave files a leave request for the calling driver.
func (h *FleetHandler) RequestLeave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.LeaveRequestInput
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	leave, err := h.fleetService.RequestLeave(c.Request.Context(), userID, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Leave requested", leave)
}

func (h *FleetHandler) ListLeaveRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

	requests, total, err := h.fleetService.ListLeaveRequests(c.Request.Context(), userID, currentUserRole(c), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Leave requests", requests, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ReviewLeave records an admin decision on a pending leave request.
func (h *FleetHandler) ReviewLeave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	leaveID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid leave request id")
		return
	}

	var request services.ReviewLeaveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	leave, err := h.fleetService.ReviewLeave(c.Request.Context(), userID, leaveID, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Leave request reviewed", leave)
}
