package services

import (
	"context"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/repositories/interfaces"
	"ridedispatch/internal/utils"
	"ridedispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PresenceService tracks driver online status and derives the daily
// attendance records from status transitions.
type PresenceService interface {
	SetStatus(ctx context.Context, driverUserID primitive.ObjectID, request *SetStatusRequest) (*models.Driver, error)
	Attendance(ctx context.Context, filter *AttendanceFilter, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error)
	MyAttendance(ctx context.Context, driverUserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error)
}

type presenceService struct {
	driverRepo     interfaces.DriverRepository
	userRepo       interfaces.UserRepository
	attendanceRepo interfaces.AttendanceRepository
	logger         *logger.Logger
}

type SetStatusRequest struct {
	IsOnline  bool     `json:"is_online"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type AttendanceFilter struct {
	DriverID  *primitive.ObjectID
	StartDate *time.Time
	EndDate   *time.Time
}

func NewPresenceService(
	driverRepo interfaces.DriverRepository,
	userRepo interfaces.UserRepository,
	attendanceRepo interfaces.AttendanceRepository,
	log *logger.Logger,
) PresenceService {
	return &presenceService{
		driverRepo:     driverRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		logger:         log,
	}
}

// SetStatus writes the driver's online flag, status timestamp and any
// reported location on every call. Only a real transition touches
// attendance: going online checks in once per UTC day, going offline
// stamps check-out and total hours.
func (s *presenceService) SetStatus(ctx context.Context, driverUserID primitive.ObjectID, request *SetStatusRequest) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.driverRepo.SetOnlineStatus(ctx, driver.ID, request.IsOnline, request.Latitude, request.Longitude)
	if err != nil {
		return nil, err
	}

	if transitioned {
		now := time.Now().UTC()
		today := utils.StartOfDay(now)

		if request.IsOnline {
			if err := s.attendanceRepo.CheckIn(ctx, driver.ID, today, now); err != nil {
				return nil, err
			}
			s.logger.WithDriverID(driver.ID).WithField("event", utils.EventDriverOnline).Info("Driver checked in")
		} else {
			if err := s.attendanceRepo.CheckOut(ctx, driver.ID, today, now); err != nil {
				return nil, err
			}
			s.logger.WithDriverID(driver.ID).WithField("event", utils.EventDriverOffline).Info("Driver checked out")
		}
	}

	return s.driverRepo.GetByID(ctx, driver.ID)
}

// Attendance lists records matching every filter part the caller gave:
// driver and date range combine rather than compete. With no filter at
// all it falls back to today's records.
func (s *presenceService) Attendance(ctx context.Context, filter *AttendanceFilter, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error) {
	var (
		driverID   *primitive.ObjectID
		start, end *time.Time
	)

	if filter != nil {
		driverID = filter.DriverID
		if filter.StartDate != nil {
			from := utils.StartOfDay(*filter.StartDate)
			start = &from
		}
		if filter.EndDate != nil {
			to := utils.EndOfDay(*filter.EndDate)
			end = &to
		}
	}

	if driverID == nil && start == nil && end == nil {
		now := time.Now().UTC()
		from, to := utils.StartOfDay(now), utils.EndOfDay(now)
		start, end = &from, &to
	}

	records, total, err := s.attendanceRepo.Find(ctx, driverID, start, end, params)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachDrivers(ctx, records); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (s *presenceService) MyAttendance(ctx context.Context, driverUserID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error) {
	driver, err := s.driverRepo.GetByUserID(ctx, driverUserID)
	if err != nil {
		return nil, 0, err
	}

	return s.attendanceRepo.GetByDriver(ctx, driver.ID, params)
}

func (s *presenceService) attachDrivers(ctx context.Context, records []*models.DriverAttendance) error {
	driverIDs := make([]primitive.ObjectID, 0, len(records))
	for _, record := range records {
		driverIDs = append(driverIDs, record.DriverID)
	}

	drivers, err := s.driverRepo.GetByIDs(ctx, driverIDs)
	if err != nil {
		return err
	}

	userIDs := make([]primitive.ObjectID, 0, len(drivers))
	for _, driver := range drivers {
		userIDs = append(userIDs, driver.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return err
	}

	for _, record := range records {
		if driver, ok := drivers[record.DriverID]; ok {
			driver.User = users[driver.UserID]
			record.Driver = driver
		}
	}

	return nil
}
