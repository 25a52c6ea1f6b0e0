package services

import (
	"context"
	"math"
	"testing"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type presenceHarness struct {
	service        PresenceService
	driverRepo     *fakeDriverRepo
	attendanceRepo *fakeAttendanceRepo

	driver       *models.Driver
	driverUserID primitive.ObjectID
}

func newPresenceHarness(t *testing.T) *presenceHarness {
	t.Helper()

	userRepo := newFakeUserRepo()
	driverRepo := newFakeDriverRepo()
	attendanceRepo := newFakeAttendanceRepo()

	ctx := context.Background()

	user := &models.User{Name: "John Driver", Email: "driver@rideshare.com", Role: models.RoleDriver, IsActive: true}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	driver := &models.Driver{UserID: user.ID}
	if err := driverRepo.Create(ctx, driver); err != nil {
		t.Fatalf("create driver: %v", err)
	}

	return &presenceHarness{
		service:        NewPresenceService(driverRepo, userRepo, attendanceRepo, newTestLogger(t)),
		driverRepo:     driverRepo,
		attendanceRepo: attendanceRepo,
		driver:         driver,
		driverUserID:   user.ID,
	}
}

func TestSetStatusChecksInOncePerDay(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()
	today := utils.StartOfDay(time.Now())

	driver, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true})
	if err != nil {
		t.Fatalf("go online: %v", err)
	}
	if !driver.IsOnline {
		t.Fatal("driver not online")
	}

	record, err := h.attendanceRepo.GetByDriverAndDate(ctx, h.driver.ID, today)
	if err != nil {
		t.Fatalf("get attendance: %v", err)
	}
	if record.CheckIn == nil {
		t.Fatal("check_in not stamped")
	}
	firstCheckIn := *record.CheckIn

	// Going offline and online again the same day must not reset the
	// original check-in.
	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: false}); err != nil {
		t.Fatalf("go offline: %v", err)
	}
	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("go online again: %v", err)
	}

	records, _, err := h.attendanceRepo.GetByDriver(ctx, h.driver.ID, nil)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("attendance records = %d, want 1", len(records))
	}
	if !records[0].CheckIn.Equal(firstCheckIn) {
		t.Error("check_in was overwritten by a later online transition")
	}
}

func TestSetStatusRepeatStillUpdatesDriver(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()

	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("go online: %v", err)
	}

	// Backdate the status timestamp so the repeated signal's bump is
	// observable.
	stale := time.Now().UTC().Add(-10 * time.Minute)
	h.driverRepo.mu.Lock()
	h.driverRepo.drivers[h.driver.ID].LastStatusChange = stale
	h.driverRepo.mu.Unlock()

	lat, lng := 12.9716, 77.5946
	driver, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true, Latitude: &lat, Longitude: &lng})
	if err != nil {
		t.Fatalf("repeat online: %v", err)
	}

	if !driver.LastStatusChange.After(stale) {
		t.Error("repeated status signal did not bump last_status_change")
	}
	if driver.CurrentLatitude == nil || *driver.CurrentLatitude != lat {
		t.Error("location dropped on repeated status signal")
	}
	if driver.CurrentLongitude == nil || *driver.CurrentLongitude != lng {
		t.Error("longitude dropped on repeated status signal")
	}

	records, _, err := h.attendanceRepo.GetByDriver(ctx, h.driver.ID, nil)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("attendance records = %d, want 1", len(records))
	}
}

func TestSetStatusRepeatSkipsAttendance(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()

	// The driver starts offline; repeating offline must not create any
	// attendance record.
	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: false}); err != nil {
		t.Fatalf("repeat offline: %v", err)
	}

	records, _, err := h.attendanceRepo.GetByDriver(ctx, h.driver.ID, nil)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("attendance records = %d, want 0", len(records))
	}

	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("go online: %v", err)
	}
	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("repeat online: %v", err)
	}

	records, _, _ = h.attendanceRepo.GetByDriver(ctx, h.driver.ID, nil)
	if len(records) != 1 {
		t.Fatalf("attendance records = %d, want 1", len(records))
	}
}

func TestSetStatusComputesTotalHours(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()
	today := utils.StartOfDay(time.Now())

	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("go online: %v", err)
	}

	// Backdate the check-in to simulate an 8.5 hour shift.
	checkIn := time.Now().UTC().Add(-8*time.Hour - 30*time.Minute)
	record, err := h.attendanceRepo.GetByDriverAndDate(ctx, h.driver.ID, today)
	if err != nil {
		t.Fatalf("get attendance: %v", err)
	}
	record.CheckIn = &checkIn

	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: false}); err != nil {
		t.Fatalf("go offline: %v", err)
	}

	record, _ = h.attendanceRepo.GetByDriverAndDate(ctx, h.driver.ID, today)
	if record.CheckOut == nil {
		t.Fatal("check_out not stamped")
	}
	if math.Abs(record.TotalHours-8.5) > 0.01 {
		t.Errorf("total hours = %v, want 8.5", record.TotalHours)
	}
}

func TestSetStatusUpdatesLocation(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()

	lat, lng := 12.9716, 77.5946
	driver, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true, Latitude: &lat, Longitude: &lng})
	if err != nil {
		t.Fatalf("go online: %v", err)
	}

	if driver.CurrentLatitude == nil || *driver.CurrentLatitude != lat {
		t.Error("latitude not recorded")
	}
	if driver.CurrentLongitude == nil || *driver.CurrentLongitude != lng {
		t.Error("longitude not recorded")
	}
}

func TestAttendanceDefaultsToToday(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()

	yesterday := utils.StartOfDay(time.Now().AddDate(0, 0, -1))
	if err := h.attendanceRepo.CheckIn(ctx, h.driver.ID, yesterday, yesterday.Add(9*time.Hour)); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}

	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("go online: %v", err)
	}

	records, total, err := h.service.Attendance(ctx, nil, utils.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("attendance records = %d (total %d), want only today's", len(records), total)
	}
	if records[0].Driver == nil {
		t.Error("driver join not attached")
	}
}

func TestSetStatusRepairsCheckInlessRecord(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()
	today := utils.StartOfDay(time.Now())

	// A day record can exist without a check-in, e.g. one pre-created as
	// absent. Going online must fill it in rather than skip it.
	h.attendanceRepo.mu.Lock()
	h.attendanceRepo.records[attendanceKey{driverID: h.driver.ID, date: today}] = &models.DriverAttendance{
		ID:       primitive.NewObjectID(),
		DriverID: h.driver.ID,
		Date:     today,
		Status:   models.AttendanceAbsent,
	}
	h.attendanceRepo.mu.Unlock()

	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("go online: %v", err)
	}

	record, err := h.attendanceRepo.GetByDriverAndDate(ctx, h.driver.ID, today)
	if err != nil {
		t.Fatalf("get attendance: %v", err)
	}
	if record.CheckIn == nil {
		t.Fatal("check_in not filled in on existing record")
	}
	if record.Status != models.AttendancePresent {
		t.Errorf("status = %q, want %q", record.Status, models.AttendancePresent)
	}

	records, _, _ := h.attendanceRepo.GetByDriver(ctx, h.driver.ID, nil)
	if len(records) != 1 {
		t.Fatalf("attendance records = %d, want 1", len(records))
	}
}

func TestAttendanceCombinesDriverAndDateFilters(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()

	otherDriverID := primitive.NewObjectID()
	days := []time.Time{
		utils.StartOfDay(time.Now().AddDate(0, 0, -5)),
		utils.StartOfDay(time.Now().AddDate(0, 0, -2)),
		utils.StartOfDay(time.Now()),
	}
	for _, day := range days {
		if err := h.attendanceRepo.CheckIn(ctx, h.driver.ID, day, day.Add(9*time.Hour)); err != nil {
			t.Fatalf("seed attendance: %v", err)
		}
		if err := h.attendanceRepo.CheckIn(ctx, otherDriverID, day, day.Add(9*time.Hour)); err != nil {
			t.Fatalf("seed attendance: %v", err)
		}
	}

	start := time.Now().AddDate(0, 0, -3)
	end := time.Now().AddDate(0, 0, -1)
	filter := &AttendanceFilter{DriverID: &h.driver.ID, StartDate: &start, EndDate: &end}

	records, total, err := h.service.Attendance(ctx, filter, utils.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("attendance records = %d (total %d), want 1", len(records), total)
	}
	if records[0].DriverID != h.driver.ID {
		t.Error("record from the wrong driver matched")
	}
	if !records[0].Date.Equal(days[1]) {
		t.Errorf("record date = %v, want %v", records[0].Date, days[1])
	}
}

func TestAttendanceOpenEndedDateRange(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()

	old := utils.StartOfDay(time.Now().AddDate(0, 0, -10))
	recent := utils.StartOfDay(time.Now().AddDate(0, 0, -1))
	for _, day := range []time.Time{old, recent} {
		if err := h.attendanceRepo.CheckIn(ctx, h.driver.ID, day, day.Add(8*time.Hour)); err != nil {
			t.Fatalf("seed attendance: %v", err)
		}
	}

	start := time.Now().AddDate(0, 0, -3)
	records, total, err := h.service.Attendance(ctx, &AttendanceFilter{StartDate: &start}, utils.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("attendance records = %d (total %d), want only the recent one", len(records), total)
	}
	if !records[0].Date.Equal(recent) {
		t.Errorf("record date = %v, want %v", records[0].Date, recent)
	}
}

func TestMyAttendance(t *testing.T) {
	h := newPresenceHarness(t)
	ctx := context.Background()

	if _, err := h.service.SetStatus(ctx, h.driverUserID, &SetStatusRequest{IsOnline: true}); err != nil {
		t.Fatalf("go online: %v", err)
	}

	records, total, err := h.service.MyAttendance(ctx, h.driverUserID, utils.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("my attendance: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("attendance records = %d (total %d), want 1", len(records), total)
	}
}
