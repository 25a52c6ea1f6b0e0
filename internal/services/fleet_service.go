package services

import (
	"context"
	"fmt"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/repositories/interfaces"
	"ridedispatch/internal/utils"
	"ridedispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FleetService groups the ancillary fleet records: the vehicle
// registry, fuel logs and leave requests.
type FleetService interface {
	CreateVehicle(ctx context.Context, request *CreateVehicleRequest) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	DeleteVehicle(ctx context.Context, id primitive.ObjectID) error

	AddFuelEntry(ctx context.Context, actorUserID primitive.ObjectID, actorRole models.UserRole, request *AddFuelEntryRequest) (*models.FuelEntry, error)
	ListFuelEntries(ctx context.Context, actorUserID primitive.ObjectID, actorRole models.UserRole, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error)

	RequestLeave(ctx context.Context, driverUserID primitive.ObjectID, request *LeaveRequestInput) (*models.LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, actorUserID primitive.ObjectID, actorRole models.UserRole, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error)
	ReviewLeave(ctx context.Context, reviewerUserID, leaveID primitive.ObjectID, request *ReviewLeaveRequest) (*models.LeaveRequest, error)
}

type fleetService struct {
	vehicleRepo interfaces.VehicleRepository
	fuelRepo    interfaces.FuelRepository
	leaveRepo   interfaces.LeaveRepository
	driverRepo  interfaces.DriverRepository
	logger      *logger.Logger
}

type CreateVehicleRequest struct {
	Make          string `json:"vehicle_make" validate:"required"`
	Model         string `json:"vehicle_model" validate:"required"`
	Year          int    `json:"vehicle_year" validate:"required"`
	LicensePlate  string `json:"license_plate" validate:"required"`
	Color         string `json:"vehicle_color" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
	LicenseExpiry string `json:"license_expiry" validate:"required"` // DD-MM-YYYY
}

type AddFuelEntryRequest struct {
	DriverID string  `json:"driver_id,omitempty"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Cost     float64 `json:"cost" validate:"required,gt=0"`
	Location string  `json:"location"`
}

type LeaveRequestInput struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Reason    string    `json:"reason" validate:"required"`
}

type ReviewLeaveRequest struct {
	Decision string `json:"decision" validate:"required"` // approved or rejected
	Comments string `json:"comments"`
}

func NewFleetService(
	vehicleRepo interfaces.VehicleRepository,
	fuelRepo interfaces.FuelRepository,
	leaveRepo interfaces.LeaveRepository,
	driverRepo interfaces.DriverRepository,
	log *logger.Logger,
) FleetService {
	return &fleetService{
		vehicleRepo: vehicleRepo,
		fuelRepo:    fuelRepo,
		leaveRepo:   leaveRepo,
		driverRepo:  driverRepo,
		logger:      log,
	}
}

func (s *fleetService) CreateVehicle(ctx context.Context, request *CreateVehicleRequest) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	expiry, err := utils.ParseLicenseExpiry(request.LicenseExpiry)
	if err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		Make:          request.Make,
		Model:         request.Model,
		Year:          request.Year,
		LicensePlate:  request.LicensePlate,
		Color:         request.Color,
		LicenseNumber: request.LicenseNumber,
		LicenseExpiry: expiry,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.WithField("vehicle_id", vehicle.ID.Hex()).Info("Vehicle registered")

	return vehicle, nil
}

func (s *fleetService) GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *fleetService) ListVehicles(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, params)
}

func (s *fleetService) DeleteVehicle(ctx context.Context, id primitive.ObjectID) error {
	return s.vehicleRepo.Delete(ctx, id)
}

// AddFuelEntry scopes by role: a driver logs fuel against their own
// profile only, an admin logs on behalf of any driver.
func (s *fleetService) AddFuelEntry(ctx context.Context, actorUserID primitive.ObjectID, actorRole models.UserRole, request *AddFuelEntryRequest) (*models.FuelEntry, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	entry := &models.FuelEntry{
		Amount:   request.Amount,
		Cost:     request.Cost,
		Location: request.Location,
		Date:     time.Now().UTC(),
	}

	switch actorRole {
	case models.RoleDriver:
		driver, err := s.driverRepo.GetByUserID(ctx, actorUserID)
		if err != nil {
			return nil, err
		}
		if request.DriverID != "" && request.DriverID != driver.ID.Hex() {
			return nil, fmt.Errorf("%w: drivers may only log their own fuel", utils.ErrForbidden)
		}
		entry.DriverID = driver.ID
		entry.AddedBy = models.FuelAddedByDriver

	case models.RoleAdmin:
		if request.DriverID == "" {
			return nil, fmt.Errorf("%w: driver_id is required", utils.ErrValidation)
		}
		driverID, err := primitive.ObjectIDFromHex(request.DriverID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid driver id", utils.ErrValidation)
		}
		if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
			return nil, err
		}
		entry.DriverID = driverID
		entry.AddedBy = models.FuelAddedByAdmin
		entry.AdminID = &actorUserID

	default:
		return nil, fmt.Errorf("%w: only drivers and admins may log fuel", utils.ErrForbidden)
	}

	if err := s.fuelRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *fleetService) ListFuelEntries(ctx context.Context, actorUserID primitive.ObjectID, actorRole models.UserRole, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error) {
	switch actorRole {
	case models.RoleAdmin:
		return s.fuelRepo.List(ctx, params)
	case models.RoleDriver:
		driver, err := s.driverRepo.GetByUserID(ctx, actorUserID)
		if err != nil {
			return nil, 0, err
		}
		return s.fuelRepo.GetByDriver(ctx, driver.ID, params)
	default:
		return nil, 0, fmt.Errorf("%w: fuel log access is restricted", utils.ErrForbidden)
	}
}

func (s *fleetService) RequestLeave(ctx context.Context, driverUserID primitive.ObjectID, request *LeaveRequestInput) (*models.LeaveRequest, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}
	if request.EndDate.Before(request.StartDate) {
		return nil, fmt.Errorf("%w: end_date must not precede start_date", utils.ErrValidation)
	}

	driver, err := s.driverRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	leave := &models.LeaveRequest{
		DriverID:  driver.ID,
		StartDate: request.StartDate,
		EndDate:   request.EndDate,
		Reason:    request.Reason,
	}

	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.logger.WithDriverID(driver.ID).Info("Leave requested")

	return leave, nil
}

func (s *fleetService) ListLeaveRequests(ctx context.Context, actorUserID primitive.ObjectID, actorRole models.UserRole, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error) {
	switch actorRole {
	case models.RoleAdmin:
		return s.leaveRepo.List(ctx, params)
	case models.RoleDriver:
		driver, err := s.driverRepo.GetByUserID(ctx, actorUserID)
		if err != nil {
			return nil, 0, err
		}
		return s.leaveRepo.GetByDriver(ctx, driver.ID, params)
	default:
		return nil, 0, fmt.Errorf("%w: leave request access is restricted", utils.ErrForbidden)
	}
}

func (s *fleetService) ReviewLeave(ctx context.Context, reviewerUserID, leaveID primitive.ObjectID, request *ReviewLeaveRequest) (*models.LeaveRequest, error) {
	var status models.LeaveStatus
	switch request.Decision {
	case string(models.LeaveStatusApproved):
		status = models.LeaveStatusApproved
	case string(models.LeaveStatusRejected):
		status = models.LeaveStatusRejected
	default:
		return nil, fmt.Errorf("%w: decision must be approved or rejected", utils.ErrValidation)
	}

	if _, err := s.leaveRepo.GetByID(ctx, leaveID); err != nil {
		return nil, err
	}

	leave, err := s.leaveRepo.Review(ctx, leaveID, status, reviewerUserID, request.Comments, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(reviewerUserID).WithField("leave_id", leaveID.Hex()).Infof("Leave request %s", status)

	return leave, nil
}
