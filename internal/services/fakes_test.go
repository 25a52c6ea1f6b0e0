package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"
	"ridedispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.SetOutput(io.Discard)

	return log
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email already registered", utils.ErrConflict)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user", utils.ErrNotFound)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: user", utils.ErrNotFound)
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []*models.User
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[primitive.ObjectID]*models.User, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

type fakeDriverRepo struct {
	mu      sync.Mutex
	drivers map[primitive.ObjectID]*models.Driver
}

func newFakeDriverRepo() *fakeDriverRepo {
	return &fakeDriverRepo{drivers: make(map[primitive.ObjectID]*models.Driver)}
}

func (r *fakeDriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	r.drivers[driver.ID] = driver
	return nil
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return nil, fmt.Errorf("%w: driver", utils.ErrNotFound)
	}
	return driver, nil
}

func (r *fakeDriverRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, driver := range r.drivers {
		if driver.UserID == userID {
			return driver, nil
		}
	}
	return nil, fmt.Errorf("%w: driver", utils.ErrNotFound)
}

func (r *fakeDriverRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeDriverRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drivers := make([]*models.Driver, 0, len(r.drivers))
	for _, driver := range r.drivers {
		drivers = append(drivers, driver)
	}
	return drivers, int64(len(drivers)), nil
}

func (r *fakeDriverRepo) GetOnline(ctx context.Context) ([]*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var online []*models.Driver
	for _, driver := range r.drivers {
		if driver.IsOnline {
			online = append(online, driver)
		}
	}
	return online, nil
}

func (r *fakeDriverRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[primitive.ObjectID]*models.Driver, len(ids))
	for _, id := range ids {
		if driver, ok := r.drivers[id]; ok {
			result[id] = driver
		}
	}
	return result, nil
}

func (r *fakeDriverRepo) SetOnlineStatus(ctx context.Context, id primitive.ObjectID, online bool, lat, lng *float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return false, fmt.Errorf("%w: driver", utils.ErrNotFound)
	}

	transitioned := driver.IsOnline != online
	driver.IsOnline = online
	driver.LastStatusChange = time.Now().UTC()
	if lat != nil && lng != nil {
		driver.CurrentLatitude = lat
		driver.CurrentLongitude = lng
	}
	return transitioned, nil
}

func (r *fakeDriverRepo) CompleteRide(ctx context.Context, id primitive.ObjectID, endKm int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return fmt.Errorf("%w: driver", utils.ErrNotFound)
	}
	driver.CurrentKmReading = endKm
	driver.TotalRides++
	return nil
}

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[primitive.ObjectID]*models.Admin)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, admin := range r.admins {
		if admin.UserID == userID {
			return admin, nil
		}
	}
	return nil, fmt.Errorf("%w: admin", utils.ErrNotFound)
}

type fakePassengerRepo struct {
	mu         sync.Mutex
	passengers map[primitive.ObjectID]*models.Passenger
}

func newFakePassengerRepo() *fakePassengerRepo {
	return &fakePassengerRepo{passengers: make(map[primitive.ObjectID]*models.Passenger)}
}

func (r *fakePassengerRepo) Create(ctx context.Context, passenger *models.Passenger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if passenger.ID.IsZero() {
		passenger.ID = primitive.NewObjectID()
	}
	r.passengers[passenger.ID] = passenger
	return nil
}

func (r *fakePassengerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	passenger, ok := r.passengers[id]
	if !ok {
		return nil, fmt.Errorf("%w: passenger", utils.ErrNotFound)
	}
	return passenger, nil
}

func (r *fakePassengerRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, passenger := range r.passengers {
		if passenger.UserID == userID {
			return passenger, nil
		}
	}
	return nil, fmt.Errorf("%w: passenger", utils.ErrNotFound)
}

func (r *fakePassengerRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Passenger, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	passengers := make([]*models.Passenger, 0, len(r.passengers))
	for _, passenger := range r.passengers {
		passengers = append(passengers, passenger)
	}
	return passengers, int64(len(passengers)), nil
}

func (r *fakePassengerRepo) IncrementTotalRides(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	passenger, ok := r.passengers[id]
	if !ok {
		return fmt.Errorf("%w: passenger", utils.ErrNotFound)
	}
	passenger.TotalRides++
	return nil
}

// fakeRideRepo mirrors the conditional-update semantics of the Mongo
// implementation: a transition only succeeds when the stored status
// still matches the expected one.
type fakeRideRepo struct {
	mu    sync.Mutex
	rides map[primitive.ObjectID]*models.Ride
}

func newFakeRideRepo() *fakeRideRepo {
	return &fakeRideRepo{rides: make(map[primitive.ObjectID]*models.Ride)}
}

func (r *fakeRideRepo) Create(ctx context.Context, ride *models.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ride.ID.IsZero() {
		ride.ID = primitive.NewObjectID()
	}
	r.rides[ride.ID] = ride
	return nil
}

func (r *fakeRideRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[id]
	if !ok {
		return nil, fmt.Errorf("%w: ride", utils.ErrNotFound)
	}
	copied := *ride
	return &copied, nil
}

func (r *fakeRideRepo) GetByIDForDriver(ctx context.Context, id, driverID primitive.ObjectID) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[id]
	if !ok || ride.DriverID == nil || *ride.DriverID != driverID {
		return nil, fmt.Errorf("%w: ride", utils.ErrNotFound)
	}
	copied := *ride
	return &copied, nil
}

func (r *fakeRideRepo) Assign(ctx context.Context, id, driverID primitive.ObjectID) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[id]
	if !ok || ride.Status != models.RideStatusRequested {
		return nil, fmt.Errorf("%w: ride is not requested", utils.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	ride.DriverID = &driverID
	ride.Status = models.RideStatusAssigned
	ride.AssignedAt = &now

	copied := *ride
	return &copied, nil
}

func (r *fakeRideRepo) Start(ctx context.Context, id, driverID primitive.ObjectID, startKm int) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[id]
	if !ok || ride.DriverID == nil || *ride.DriverID != driverID || ride.Status != models.RideStatusAssigned {
		return nil, fmt.Errorf("%w: ride is not assigned to driver", utils.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	ride.Status = models.RideStatusInProgress
	ride.PickedUpAt = &now
	ride.StartKm = &startKm

	copied := *ride
	return &copied, nil
}

func (r *fakeRideRepo) Complete(ctx context.Context, id, driverID primitive.ObjectID, endKm int, distance float64, actualMinutes int) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[id]
	if !ok || ride.DriverID == nil || *ride.DriverID != driverID || ride.Status != models.RideStatusInProgress {
		return nil, fmt.Errorf("%w: ride is not in progress", utils.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	ride.Status = models.RideStatusCompleted
	ride.CompletedAt = &now
	ride.EndKm = &endKm
	ride.Distance = distance
	ride.ActualMinutes = &actualMinutes

	copied := *ride
	return &copied, nil
}

func (r *fakeRideRepo) Cancel(ctx context.Context, id primitive.ObjectID, cancelledBy string) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[id]
	if !ok || ride.Status.Terminal() {
		return nil, fmt.Errorf("%w: ride is terminal", utils.ErrInvalidTransition)
	}

	now := time.Now().UTC()
	ride.Status = models.RideStatusCancelled
	ride.CancelledAt = &now
	ride.CancelledBy = cancelledBy

	copied := *ride
	return &copied, nil
}

func (r *fakeRideRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rides := make([]*models.Ride, 0, len(r.rides))
	for _, ride := range r.rides {
		copied := *ride
		rides = append(rides, &copied)
	}
	return rides, int64(len(rides)), nil
}

func (r *fakeRideRepo) GetPending(ctx context.Context) ([]*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []*models.Ride
	for _, ride := range r.rides {
		if ride.Status == models.RideStatusRequested {
			copied := *ride
			pending = append(pending, &copied)
		}
	}
	return pending, nil
}

func (r *fakeRideRepo) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rides []*models.Ride
	for _, ride := range r.rides {
		if ride.DriverID != nil && *ride.DriverID == driverID {
			copied := *ride
			rides = append(rides, &copied)
		}
	}
	return rides, int64(len(rides)), nil
}

func (r *fakeRideRepo) GetByPassenger(ctx context.Context, passengerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rides []*models.Ride
	for _, ride := range r.rides {
		if ride.PassengerID == passengerID {
			copied := *ride
			rides = append(rides, &copied)
		}
	}
	return rides, int64(len(rides)), nil
}

func (r *fakeRideRepo) GetAssignedToDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rides []*models.Ride
	for _, ride := range r.rides {
		if ride.DriverID != nil && *ride.DriverID == driverID &&
			(ride.Status == models.RideStatusAssigned || ride.Status == models.RideStatusInProgress) {
			copied := *ride
			rides = append(rides, &copied)
		}
	}
	return rides, nil
}

func (r *fakeRideRepo) GetByDateRange(ctx context.Context, start, end time.Time, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rides []*models.Ride
	for _, ride := range r.rides {
		if !ride.RequestedAt.Before(start) && !ride.RequestedAt.After(end) {
			copied := *ride
			rides = append(rides, &copied)
		}
	}
	return rides, int64(len(rides)), nil
}

type fakeKilometerRepo struct {
	mu      sync.Mutex
	entries []*models.KilometerEntry
}

func newFakeKilometerRepo() *fakeKilometerRepo {
	return &fakeKilometerRepo{}
}

func (r *fakeKilometerRepo) Create(ctx context.Context, entry *models.KilometerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeKilometerRepo) CloseForRide(ctx context.Context, rideID primitive.ObjectID, endKm int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.entries {
		if entry.RideID == rideID && !entry.IsCompleted {
			entry.EndKm = &endKm
			entry.IsCompleted = true
			entry.CompletedAt = &at
			return nil
		}
	}
	return fmt.Errorf("%w: kilometer entry", utils.ErrNotFound)
}

func (r *fakeKilometerRepo) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.KilometerEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []*models.KilometerEntry
	for _, entry := range r.entries {
		if entry.DriverID == driverID {
			entries = append(entries, entry)
		}
	}
	return entries, int64(len(entries)), nil
}

type attendanceKey struct {
	driverID primitive.ObjectID
	date     time.Time
}

// fakeAttendanceRepo enforces the one-record-per-driver-per-day rule the
// Mongo implementation gets from its unique index.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[attendanceKey]*models.DriverAttendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[attendanceKey]*models.DriverAttendance)}
}

func (r *fakeAttendanceRepo) CheckIn(ctx context.Context, driverID primitive.ObjectID, date, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attendanceKey{driverID: driverID, date: date}
	if record, exists := r.records[key]; exists {
		if record.CheckIn == nil {
			record.CheckIn = &at
			record.Status = models.AttendancePresent
		}
		return nil
	}

	r.records[key] = &models.DriverAttendance{
		ID:       primitive.NewObjectID(),
		DriverID: driverID,
		Date:     date,
		CheckIn:  &at,
		Status:   models.AttendancePresent,
	}
	return nil
}

func (r *fakeAttendanceRepo) CheckOut(ctx context.Context, driverID primitive.ObjectID, date, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[attendanceKey{driverID: driverID, date: date}]
	if !exists || record.CheckIn == nil {
		return fmt.Errorf("%w: attendance", utils.ErrNotFound)
	}

	record.CheckOut = &at
	record.TotalHours = at.Sub(*record.CheckIn).Hours()
	return nil
}

func (r *fakeAttendanceRepo) GetByDriverAndDate(ctx context.Context, driverID primitive.ObjectID, date time.Time) (*models.DriverAttendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[attendanceKey{driverID: driverID, date: date}]
	if !exists {
		return nil, fmt.Errorf("%w: attendance", utils.ErrNotFound)
	}
	return record, nil
}

func (r *fakeAttendanceRepo) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []*models.DriverAttendance
	for _, record := range r.records {
		if record.DriverID == driverID {
			records = append(records, record)
		}
	}
	return records, int64(len(records)), nil
}

func (r *fakeAttendanceRepo) Find(ctx context.Context, driverID *primitive.ObjectID, start, end *time.Time, params *utils.PaginationParams) ([]*models.DriverAttendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []*models.DriverAttendance
	for _, record := range r.records {
		if driverID != nil && record.DriverID != *driverID {
			continue
		}
		if start != nil && record.Date.Before(*start) {
			continue
		}
		if end != nil && record.Date.After(*end) {
			continue
		}
		records = append(records, record)
	}
	return records, int64(len(records)), nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[primitive.ObjectID]*models.Vehicle)}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.vehicles {
		if existing.LicensePlate == vehicle.LicensePlate {
			return fmt.Errorf("%w: license plate already registered", utils.ErrConflict)
		}
	}
	if vehicle.ID.IsZero() {
		vehicle.ID = primitive.NewObjectID()
	}
	r.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("%w: vehicle", utils.ErrNotFound)
	}
	return vehicle, nil
}

func (r *fakeVehicleRepo) GetByLicensePlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, vehicle := range r.vehicles {
		if vehicle.LicensePlate == plate {
			return vehicle, nil
		}
	}
	return nil, fmt.Errorf("%w: vehicle", utils.ErrNotFound)
}

func (r *fakeVehicleRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeVehicleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[id]; !ok {
		return fmt.Errorf("%w: vehicle", utils.ErrNotFound)
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	vehicles := make([]*models.Vehicle, 0, len(r.vehicles))
	for _, vehicle := range r.vehicles {
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, int64(len(vehicles)), nil
}

type fakeFuelRepo struct {
	mu      sync.Mutex
	entries []*models.FuelEntry
}

func newFakeFuelRepo() *fakeFuelRepo {
	return &fakeFuelRepo{}
}

func (r *fakeFuelRepo) Create(ctx context.Context, entry *models.FuelEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeFuelRepo) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []*models.FuelEntry
	for _, entry := range r.entries {
		if entry.DriverID == driverID {
			entries = append(entries, entry)
		}
	}
	return entries, int64(len(entries)), nil
}

func (r *fakeFuelRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.FuelEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, int64(len(r.entries)), nil
}

type fakeLeaveRepo struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*models.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[primitive.ObjectID]*models.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(ctx context.Context, request *models.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	request.Status = models.LeaveStatusPending
	request.RequestedAt = time.Now().UTC()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: leave request", utils.ErrNotFound)
	}
	return request, nil
}

func (r *fakeLeaveRepo) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var requests []*models.LeaveRequest
	for _, request := range r.requests {
		if request.DriverID == driverID {
			requests = append(requests, request)
		}
	}
	return requests, int64(len(requests)), nil
}

func (r *fakeLeaveRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.LeaveRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := make([]*models.LeaveRequest, 0, len(r.requests))
	for _, request := range r.requests {
		requests = append(requests, request)
	}
	return requests, int64(len(requests)), nil
}

func (r *fakeLeaveRepo) Review(ctx context.Context, id primitive.ObjectID, status models.LeaveStatus, reviewerID primitive.ObjectID, comments string, at time.Time) (*models.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok || request.Status != models.LeaveStatusPending {
		return nil, fmt.Errorf("%w: leave request is not pending", utils.ErrInvalidTransition)
	}

	request.Status = status
	request.ReviewedAt = &at
	request.ReviewedBy = &reviewerID
	request.Comments = comments
	return request, nil
}
