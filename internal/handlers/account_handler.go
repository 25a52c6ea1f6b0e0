package handlers

import (
	"ridedispatch/internal/services"
	"ridedispatch/internal/utils"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateUser creates a bare user account of any role.
func (h *AccountHandler) CreateUser(c *gin.Context) {
	var request services.CreateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.accountService.CreateUser(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "User created", user)
}

// CreateDriver creates a driver account together with its profile.
func (h *AccountHandler) CreateDriver(c *gin.Context) {
	var request services.CreateDriverRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driver, err := h.accountService.CreateDriver(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Driver created", driver)
}

// CreatePassenger creates a passenger account together with its
// profile.
func (h *AccountHandler) CreatePassenger(c *gin.Context) {
	var request services.CreatePassengerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	passenger, err := h.accountService.CreatePassenger(c.Request.Context(), &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Passenger created", passenger)
}

func (h *AccountHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.accountService.ListUsers(c.Request.Context(), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users", users, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *AccountHandler) ListDrivers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	drivers, total, err := h.accountService.ListDrivers(c.Request.Context(), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Drivers", drivers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *AccountHandler) ListPassengers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	passengers, total, err := h.accountService.ListPassengers(c.Request.Context(), params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Passengers", passengers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// MyDriverProfile returns the driver profile of the calling user.
func (h *AccountHandler) MyDriverProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	driver, err := h.accountService.DriverProfile(c.Request.Context(), userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver profile", driver)
}
