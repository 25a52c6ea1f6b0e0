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

// AccountService covers admin-side account management: creating users
// and their role profiles, and the joined listings.
type AccountService interface {
	CreateUser(ctx context.Context, request *CreateUserRequest) (*models.User, error)
	CreateDriver(ctx context.Context, request *CreateDriverRequest) (*models.Driver, error)
	CreatePassenger(ctx context.Context, request *CreatePassengerRequest) (*models.Passenger, error)

	ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	ListDrivers(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error)
	ListPassengers(ctx context.Context, params *utils.PaginationParams) ([]*models.Passenger, int64, error)

	// DriverProfile resolves the driver profile of the calling user.
	DriverProfile(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error)
}

type accountService struct {
	userRepo      interfaces.UserRepository
	driverRepo    interfaces.DriverRepository
	passengerRepo interfaces.PassengerRepository
	adminRepo     interfaces.AdminRepository
	vehicleRepo   interfaces.VehicleRepository
	logger        *logger.Logger
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateDriverRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         string  `json:"phone" validate:"required"`
	Password      string  `json:"password" validate:"required,min=8"`
	VehicleID     *string `json:"vehicle_id,omitempty"`
	VehicleMake   string  `json:"vehicle_make"`
	VehicleModel  string  `json:"vehicle_model"`
	VehicleYear   int     `json:"vehicle_year"`
	LicensePlate  string  `json:"license_plate"`
	VehicleColor  string  `json:"vehicle_color"`
	LicenseNumber string  `json:"license_number" validate:"required"`
	LicenseExpiry string  `json:"license_expiry" validate:"required"` // DD-MM-YYYY
	KmReading     int     `json:"current_km_reading"`
}

type CreatePassengerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func NewAccountService(
	userRepo interfaces.UserRepository,
	driverRepo interfaces.DriverRepository,
	passengerRepo interfaces.PassengerRepository,
	adminRepo interfaces.AdminRepository,
	vehicleRepo interfaces.VehicleRepository,
	log *logger.Logger,
) AccountService {
	return &accountService{
		userRepo:      userRepo,
		driverRepo:    driverRepo,
		passengerRepo: passengerRepo,
		adminRepo:     adminRepo,
		vehicleRepo:   vehicleRepo,
		logger:        log,
	}
}

func (s *accountService) CreateUser(ctx context.Context, request *CreateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	role := models.UserRole(request.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be admin, driver or passenger", utils.ErrValidation)
	}

	user, err := s.createUserRecord(ctx, request.Name, request.Email, request.Phone, request.Password, role)
	if err != nil {
		return nil, err
	}

	if role == models.RoleAdmin {
		if err := s.adminRepo.Create(ctx, &models.Admin{UserID: user.ID, Permissions: []string{"all"}}); err != nil {
			return nil, err
		}
	}

	s.logger.WithUserID(user.ID).WithField("event", utils.EventUserRegistered).Info("User created")

	return user, nil
}

func (s *accountService) CreateDriver(ctx context.Context, request *CreateDriverRequest) (*models.Driver, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	expiry, err := utils.ParseLicenseExpiry(request.LicenseExpiry)
	if err != nil {
		return nil, err
	}

	var vehicleID *primitive.ObjectID
	if request.VehicleID != nil && *request.VehicleID != "" {
		id, err := primitive.ObjectIDFromHex(*request.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid vehicle id", utils.ErrValidation)
		}
		if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		vehicleID = &id
	}

	user, err := s.createUserRecord(ctx, request.Name, request.Email, request.Phone, request.Password, models.RoleDriver)
	if err != nil {
		return nil, err
	}

	driver := &models.Driver{
		UserID:           user.ID,
		VehicleID:        vehicleID,
		VehicleMake:      request.VehicleMake,
		VehicleModel:     request.VehicleModel,
		VehicleYear:      request.VehicleYear,
		LicensePlate:     request.LicensePlate,
		VehicleColor:     request.VehicleColor,
		LicenseNumber:    request.LicenseNumber,
		LicenseExpiry:    expiry,
		Rating:           5.0,
		CurrentKmReading: request.KmReading,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	driver.User = user
	s.logger.WithUserID(user.ID).WithDriverID(driver.ID).Info("Driver created")

	return driver, nil
}

func (s *accountService) CreatePassenger(ctx context.Context, request *CreatePassengerRequest) (*models.Passenger, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	user, err := s.createUserRecord(ctx, request.Name, request.Email, request.Phone, request.Password, models.RolePassenger)
	if err != nil {
		return nil, err
	}

	passenger := &models.Passenger{
		UserID: user.ID,
		Rating: 5.0,
	}

	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		return nil, err
	}

	passenger.User = user
	s.logger.WithUserID(user.ID).Info("Passenger created")

	return passenger, nil
}

func (s *accountService) ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

func (s *accountService) ListDrivers(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	drivers, total, err := s.driverRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachDriverUsers(ctx, drivers); err != nil {
		return nil, 0, err
	}

	return drivers, total, nil
}

func (s *accountService) ListPassengers(ctx context.Context, params *utils.PaginationParams) ([]*models.Passenger, int64, error) {
	passengers, total, err := s.passengerRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]primitive.ObjectID, 0, len(passengers))
	for _, p := range passengers {
		ids = append(ids, p.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range passengers {
		p.User = users[p.UserID]
	}

	return passengers, total, nil
}

func (s *accountService) DriverProfile(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		driver.User = user
	}

	return driver, nil
}

func (s *accountService) createUserRecord(ctx context.Context, name, email, phone, password string, role models.UserRole) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Role:      role,
		Password:  hash,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *accountService) attachDriverUsers(ctx context.Context, drivers []*models.Driver) error {
	ids := make([]primitive.ObjectID, 0, len(drivers))
	for _, d := range drivers {
		ids = append(ids, d.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, d := range drivers {
		d.User = users[d.UserID]
	}

	return nil
}
