package handlers

import (
	"ridedispatch/internal/models"
	"ridedispatch/internal/services"
	"ridedispatch/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverHandler struct {
	presenceService services.PresenceService
}

func NewDriverHandler(presenceService services.PresenceService) *DriverHandler {
	return &DriverHandler{
		presenceService: presenceService,
	}
}

// SetStatus flips the calling driver's online flag, which feeds the
// attendance log.
func (h *DriverHandler) SetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.SetStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driver, err := h.presenceService.SetStatus(c.Request.Context(), userID, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Status updated", driver)
}

// Attendance lists attendance records. Admins may filter by driver or
// date range; drivers see their own history.
func (h *DriverHandler) Attendance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

	role := currentUserRole(c)
	if role != models.RoleDriver && role != models.RoleAdmin {
		utils.ForbiddenResponse(c)
		return
	}

	if role == models.RoleDriver {
		records, total, err := h.presenceService.MyAttendance(c.Request.Context(), userID, params)
		if err != nil {
			utils.DomainErrorResponse(c, err)
			return
		}

		utils.SuccessResponseWithMeta(c, "Attendance", records, &utils.Meta{
			Pagination: utils.CreatePaginationMeta(params, total),
		})
		return
	}

	filter := &services.AttendanceFilter{}

	if raw := c.Query("driver_id"); raw != "" {
		driverID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid driver id")
			return
		}
		filter.DriverID = &driverID
	}

	if raw := c.Query("start_date"); raw != "" {
		start, err := utils.ParseTimeISO(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid start_date")
			return
		}
		filter.StartDate = &start
	}

	if raw := c.Query("end_date"); raw != "" {
		end, err := utils.ParseTimeISO(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid end_date")
			return
		}
		filter.EndDate = &end
	}

	records, total, err := h.presenceService.Attendance(c.Request.Context(), filter, params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Attendance", records, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
