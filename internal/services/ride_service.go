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

// RideService drives the ride lifecycle:
//
//	requested -> assigned -> in_progress -> completed
//
// with cancellation allowed from any non-terminal state. Transitions
// are delegated to conditional updates in the repository, so a lost
// race always surfaces as an invalid transition.
type RideService interface {
	Request(ctx context.Context, passengerUserID primitive.ObjectID, request *RequestRideRequest) (*models.Ride, error)
	CreateManual(ctx context.Context, request *ManualRideRequest) (*models.Ride, error)
	Assign(ctx context.Context, rideID, driverID primitive.ObjectID) (*models.Ride, error)
	Start(ctx context.Context, driverUserID, rideID primitive.ObjectID, startKm int) (*models.Ride, error)
	Complete(ctx context.Context, driverUserID, rideID primitive.ObjectID, endKm int) (*models.Ride, error)
	Cancel(ctx context.Context, rideID primitive.ObjectID, cancelledBy string) (*models.Ride, error)

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Ride, int64, error)
	Pending(ctx context.Context) ([]*models.Ride, error)
	AssignedToDriver(ctx context.Context, driverUserID primitive.ObjectID) ([]*models.Ride, error)
	ForPassenger(ctx context.Context, passengerUserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error)
	ForDriver(ctx context.Context, driverUserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error)
}

type rideService struct {
	rideRepo      interfaces.RideRepository
	driverRepo    interfaces.DriverRepository
	passengerRepo interfaces.PassengerRepository
	userRepo      interfaces.UserRepository
	kmRepo        interfaces.KilometerRepository
	logger        *logger.Logger
}

type RequestRideRequest struct {
	PickupLatitude   float64 `json:"pickup_latitude" validate:"min=-90,max=90"`
	PickupLongitude  float64 `json:"pickup_longitude" validate:"min=-180,max=180"`
	PickupAddress    string  `json:"pickup_address" validate:"required"`
	DropoffLatitude  float64 `json:"dropoff_latitude" validate:"min=-90,max=90"`
	DropoffLongitude float64 `json:"dropoff_longitude" validate:"min=-180,max=180"`
	DropoffAddress   string  `json:"dropoff_address" validate:"required"`
}

type ManualRideRequest struct {
	PassengerID string `json:"passenger_id" validate:"required"`
	DriverID    string `json:"driver_id" validate:"required"`
	RequestRideRequest
}

func NewRideService(
	rideRepo interfaces.RideRepository,
	driverRepo interfaces.DriverRepository,
	passengerRepo interfaces.PassengerRepository,
	userRepo interfaces.UserRepository,
	kmRepo interfaces.KilometerRepository,
	log *logger.Logger,
) RideService {
	return &rideService{
		rideRepo:      rideRepo,
		driverRepo:    driverRepo,
		passengerRepo: passengerRepo,
		userRepo:      userRepo,
		kmRepo:        kmRepo,
		logger:        log,
	}
}

func (s *rideService) Request(ctx context.Context, passengerUserID primitive.ObjectID, request *RequestRideRequest) (*models.Ride, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	passenger, err := s.passengerRepo.GetByUserID(ctx, passengerUserID)
	if err != nil {
		return nil, err
	}

	ride := &models.Ride{
		PassengerID:      passenger.ID,
		Status:           models.RideStatusRequested,
		PickupLatitude:   request.PickupLatitude,
		PickupLongitude:  request.PickupLongitude,
		PickupAddress:    request.PickupAddress,
		DropoffLatitude:  request.DropoffLatitude,
		DropoffLongitude: request.DropoffLongitude,
		DropoffAddress:   request.DropoffAddress,
		RequestedAt:      time.Now().UTC(),
		EstimatedMinutes: utils.DefaultEstimatedMinutes,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	s.logger.LogRideEvent(ride.ID, utils.EventRideRequested, map[string]interface{}{
		"passenger_id": passenger.ID.Hex(),
	})

	return ride, nil
}

// CreateManual lets an admin open a ride already bound to a driver,
// skipping the requested state.
func (s *rideService) CreateManual(ctx context.Context, request *ManualRideRequest) (*models.Ride, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	passengerID, err := primitive.ObjectIDFromHex(request.PassengerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid passenger id", utils.ErrValidation)
	}
	driverID, err := primitive.ObjectIDFromHex(request.DriverID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid driver id", utils.ErrValidation)
	}

	if _, err := s.passengerRepo.GetByID(ctx, passengerID); err != nil {
		return nil, err
	}
	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ride := &models.Ride{
		PassengerID:      passengerID,
		DriverID:         &driverID,
		Status:           models.RideStatusAssigned,
		PickupLatitude:   request.PickupLatitude,
		PickupLongitude:  request.PickupLongitude,
		PickupAddress:    request.PickupAddress,
		DropoffLatitude:  request.DropoffLatitude,
		DropoffLongitude: request.DropoffLongitude,
		DropoffAddress:   request.DropoffAddress,
		RequestedAt:      now,
		AssignedAt:       &now,
		EstimatedMinutes: utils.DefaultEstimatedMinutes,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	s.logger.LogRideEvent(ride.ID, utils.EventRideAssigned, map[string]interface{}{
		"driver_id": driverID.Hex(),
		"manual":    true,
	})

	return ride, nil
}

func (s *rideService) Assign(ctx context.Context, rideID, driverID primitive.ObjectID) (*models.Ride, error) {
	if _, err := s.rideRepo.GetByID(ctx, rideID); err != nil {
		return nil, err
	}
	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	ride, err := s.rideRepo.Assign(ctx, rideID, driverID)
	if err != nil {
		return nil, err
	}

	s.logger.LogRideEvent(ride.ID, utils.EventRideAssigned, map[string]interface{}{
		"driver_id": driverID.Hex(),
	})

	return ride, nil
}

func (s *rideService) Start(ctx context.Context, driverUserID, rideID primitive.ObjectID, startKm int) (*models.Ride, error) {
	if startKm < 0 {
		return nil, fmt.Errorf("%w: start_km must not be negative", utils.ErrValidation)
	}

	driver, err := s.driverRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	// Rides owned by another driver look like missing rides.
	current, err := s.rideRepo.GetByIDForDriver(ctx, rideID, driver.ID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.RideStatusAssigned {
		return nil, fmt.Errorf("%w: ride is %s, not assigned", utils.ErrInvalidTransition, current.Status)
	}

	ride, err := s.rideRepo.Start(ctx, rideID, driver.ID, startKm)
	if err != nil {
		return nil, err
	}

	if err := s.kmRepo.Create(ctx, &models.KilometerEntry{
		DriverID: driver.ID,
		RideID:   ride.ID,
		StartKm:  startKm,
		Date:     utils.StartOfDay(time.Now()),
	}); err != nil {
		s.logger.WithRideID(ride.ID).WithError(err).Warn("Failed to open kilometer entry")
	}

	s.logger.LogRideEvent(ride.ID, utils.EventRideStarted, map[string]interface{}{
		"driver_id": driver.ID.Hex(),
		"start_km":  startKm,
	})

	return ride, nil
}

func (s *rideService) Complete(ctx context.Context, driverUserID, rideID primitive.ObjectID, endKm int) (*models.Ride, error) {
	driver, err := s.driverRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	current, err := s.rideRepo.GetByIDForDriver(ctx, rideID, driver.ID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.RideStatusInProgress {
		return nil, fmt.Errorf("%w: ride is %s, not in progress", utils.ErrInvalidTransition, current.Status)
	}

	distance := 0.0
	if current.StartKm != nil {
		if endKm < *current.StartKm {
			return nil, fmt.Errorf("%w: end_km must not be below start_km", utils.ErrValidation)
		}
		distance = float64(endKm - *current.StartKm)
	}

	actualMinutes := 0
	if current.PickedUpAt != nil {
		actualMinutes = int(time.Since(*current.PickedUpAt).Minutes())
	}

	ride, err := s.rideRepo.Complete(ctx, rideID, driver.ID, endKm, distance, actualMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.driverRepo.CompleteRide(ctx, driver.ID, endKm); err != nil {
		s.logger.WithDriverID(driver.ID).WithError(err).Warn("Failed to advance driver odometer")
	}
	if err := s.passengerRepo.IncrementTotalRides(ctx, ride.PassengerID); err != nil {
		s.logger.WithRideID(ride.ID).WithError(err).Warn("Failed to increment passenger rides")
	}
	if err := s.kmRepo.CloseForRide(ctx, ride.ID, endKm, time.Now().UTC()); err != nil {
		s.logger.WithRideID(ride.ID).WithError(err).Warn("Failed to close kilometer entry")
	}

	s.logger.LogRideEvent(ride.ID, utils.EventRideCompleted, map[string]interface{}{
		"driver_id": driver.ID.Hex(),
		"end_km":    endKm,
		"distance":  distance,
	})

	return ride, nil
}

func (s *rideService) Cancel(ctx context.Context, rideID primitive.ObjectID, cancelledBy string) (*models.Ride, error) {
	if _, err := s.rideRepo.GetByID(ctx, rideID); err != nil {
		return nil, err
	}

	ride, err := s.rideRepo.Cancel(ctx, rideID, cancelledBy)
	if err != nil {
		return nil, err
	}

	s.logger.LogRideEvent(ride.ID, utils.EventRideCancelled, map[string]interface{}{
		"cancelled_by": cancelledBy,
	})

	return ride, nil
}

func (s *rideService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	rides, total, err := s.rideRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachParticipants(ctx, rides); err != nil {
		return nil, 0, err
	}

	return rides, total, nil
}

func (s *rideService) Pending(ctx context.Context) ([]*models.Ride, error) {
	rides, err := s.rideRepo.GetPending(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.attachParticipants(ctx, rides); err != nil {
		return nil, err
	}

	return rides, nil
}

func (s *rideService) AssignedToDriver(ctx context.Context, driverUserID primitive.ObjectID) ([]*models.Ride, error) {
	driver, err := s.driverRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.GetAssignedToDriver(ctx, driver.ID)
	if err != nil {
		return nil, err
	}

	if err := s.attachParticipants(ctx, rides); err != nil {
		return nil, err
	}

	return rides, nil
}

func (s *rideService) ForPassenger(ctx context.Context, passengerUserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	passenger, err := s.passengerRepo.GetByUserID(ctx, passengerUserID)
	if err != nil {
		return nil, 0, err
	}

	rides, total, err := s.rideRepo.GetByPassenger(ctx, passenger.ID, params)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachParticipants(ctx, rides); err != nil {
		return nil, 0, err
	}

	return rides, total, nil
}

func (s *rideService) ForDriver(ctx context.Context, driverUserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	driver, err := s.driverRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return nil, 0, err
	}

	rides, total, err := s.rideRepo.GetByDriver(ctx, driver.ID, params)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachParticipants(ctx, rides); err != nil {
		return nil, 0, err
	}

	return rides, total, nil
}

// attachParticipants joins driver and passenger records (with their
// users) onto the rides at read time.
func (s *rideService) attachParticipants(ctx context.Context, rides []*models.Ride) error {
	driverIDs := make([]primitive.ObjectID, 0, len(rides))
	for _, ride := range rides {
		if ride.DriverID != nil {
			driverIDs = append(driverIDs, *ride.DriverID)
		}
	}

	drivers, err := s.driverRepo.GetByIDs(ctx, driverIDs)
	if err != nil {
		return err
	}

	userIDs := make([]primitive.ObjectID, 0, len(rides)+len(drivers))
	passengers := make(map[primitive.ObjectID]*models.Passenger, len(rides))
	for _, ride := range rides {
		passenger, err := s.passengerRepo.GetByID(ctx, ride.PassengerID)
		if err != nil {
			continue
		}
		passengers[ride.PassengerID] = passenger
		userIDs = append(userIDs, passenger.UserID)
	}
	for _, driver := range drivers {
		userIDs = append(userIDs, driver.UserID)
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return err
	}

	for _, ride := range rides {
		if ride.DriverID != nil {
			if driver, ok := drivers[*ride.DriverID]; ok {
				driver.User = users[driver.UserID]
				ride.Driver = driver
			}
		}
		if passenger, ok := passengers[ride.PassengerID]; ok {
			passenger.User = users[passenger.UserID]
			ride.Passenger = passenger
		}
	}

	return nil
}
