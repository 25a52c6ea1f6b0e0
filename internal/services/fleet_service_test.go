package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fleetHarness struct {
	service     FleetService
	vehicleRepo *fakeVehicleRepo
	fuelRepo    *fakeFuelRepo
	leaveRepo   *fakeLeaveRepo
	driverRepo  *fakeDriverRepo

	driver       *models.Driver
	driverUserID primitive.ObjectID
	adminUserID  primitive.ObjectID
}

func newFleetHarness(t *testing.T) *fleetHarness {
	t.Helper()

	vehicleRepo := newFakeVehicleRepo()
	fuelRepo := newFakeFuelRepo()
	leaveRepo := newFakeLeaveRepo()
	driverRepo := newFakeDriverRepo()

	driverUserID := primitive.NewObjectID()
	driver := &models.Driver{UserID: driverUserID}
	if err := driverRepo.Create(context.Background(), driver); err != nil {
		t.Fatalf("create driver: %v", err)
	}

	return &fleetHarness{
		service:      NewFleetService(vehicleRepo, fuelRepo, leaveRepo, driverRepo, newTestLogger(t)),
		vehicleRepo:  vehicleRepo,
		fuelRepo:     fuelRepo,
		leaveRepo:    leaveRepo,
		driverRepo:   driverRepo,
		driver:       driver,
		driverUserID: driverUserID,
		adminUserID:  primitive.NewObjectID(),
	}
}

func validVehicleRequest() *CreateVehicleRequest {
	return &CreateVehicleRequest{
		Make:          "Toyota",
		Model:         "Camry",
		Year:          2020,
		LicensePlate:  "ABC-123",
		Color:         "Silver",
		LicenseNumber: "DL123456789",
		LicenseExpiry: "31-12-2025",
	}
}

func TestCreateVehicleParsesExpiry(t *testing.T) {
	h := newFleetHarness(t)

	vehicle, err := h.service.CreateVehicle(context.Background(), validVehicleRequest())
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	if !vehicle.LicenseExpiry.Equal(want) {
		t.Errorf("license expiry = %v, want %v", vehicle.LicenseExpiry, want)
	}
}

func TestCreateVehicleRejectsBadExpiry(t *testing.T) {
	h := newFleetHarness(t)

	for _, expiry := range []string{"2025-12-31", "31/12/2025", "13-13-2025", "soon"} {
		request := validVehicleRequest()
		request.LicenseExpiry = expiry

		if _, err := h.service.CreateVehicle(context.Background(), request); !errors.Is(err, utils.ErrValidation) {
			t.Errorf("expiry %q: err = %v, want ErrValidation", expiry, err)
		}
	}
}

func TestCreateVehicleDuplicatePlate(t *testing.T) {
	h := newFleetHarness(t)
	ctx := context.Background()

	if _, err := h.service.CreateVehicle(ctx, validVehicleRequest()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	if _, err := h.service.CreateVehicle(ctx, validVehicleRequest()); !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("duplicate create err = %v, want ErrConflict", err)
	}
}

func TestAddFuelEntryAsDriver(t *testing.T) {
	h := newFleetHarness(t)

	entry, err := h.service.AddFuelEntry(context.Background(), h.driverUserID, models.RoleDriver, &AddFuelEntryRequest{
		Amount:   40,
		Cost:     4200,
		Location: "Shell, MG Road",
	})
	if err != nil {
		t.Fatalf("add fuel: %v", err)
	}

	if entry.DriverID != h.driver.ID {
		t.Error("entry not bound to calling driver")
	}
	if entry.AddedBy != models.FuelAddedByDriver {
		t.Errorf("added_by = %s, want driver", entry.AddedBy)
	}
	if entry.AdminID != nil {
		t.Error("admin_id set on a driver entry")
	}
}

func TestAddFuelEntryDriverCannotLogForOthers(t *testing.T) {
	h := newFleetHarness(t)

	_, err := h.service.AddFuelEntry(context.Background(), h.driverUserID, models.RoleDriver, &AddFuelEntryRequest{
		DriverID: primitive.NewObjectID().Hex(),
		Amount:   40,
		Cost:     4200,
	})
	if !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestAddFuelEntryAsAdmin(t *testing.T) {
	h := newFleetHarness(t)

	entry, err := h.service.AddFuelEntry(context.Background(), h.adminUserID, models.RoleAdmin, &AddFuelEntryRequest{
		DriverID: h.driver.ID.Hex(),
		Amount:   35,
		Cost:     3700,
	})
	if err != nil {
		t.Fatalf("add fuel: %v", err)
	}

	if entry.AddedBy != models.FuelAddedByAdmin {
		t.Errorf("added_by = %s, want admin", entry.AddedBy)
	}
	if entry.AdminID == nil || *entry.AdminID != h.adminUserID {
		t.Error("admin_id not recorded")
	}
}

func TestAddFuelEntryAdminRequiresDriver(t *testing.T) {
	h := newFleetHarness(t)

	_, err := h.service.AddFuelEntry(context.Background(), h.adminUserID, models.RoleAdmin, &AddFuelEntryRequest{
		Amount: 35,
		Cost:   3700,
	})
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestListFuelEntriesScopedByRole(t *testing.T) {
	h := newFleetHarness(t)
	ctx := context.Background()

	otherDriverUserID := primitive.NewObjectID()
	other := &models.Driver{UserID: otherDriverUserID}
	if err := h.driverRepo.Create(ctx, other); err != nil {
		t.Fatalf("create other driver: %v", err)
	}

	if _, err := h.service.AddFuelEntry(ctx, h.driverUserID, models.RoleDriver, &AddFuelEntryRequest{Amount: 40, Cost: 4200}); err != nil {
		t.Fatalf("add fuel: %v", err)
	}
	if _, err := h.service.AddFuelEntry(ctx, otherDriverUserID, models.RoleDriver, &AddFuelEntryRequest{Amount: 20, Cost: 2100}); err != nil {
		t.Fatalf("add other fuel: %v", err)
	}

	mine, total, err := h.service.ListFuelEntries(ctx, h.driverUserID, models.RoleDriver, utils.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("list as driver: %v", err)
	}
	if total != 1 || len(mine) != 1 {
		t.Fatalf("driver sees %d entries (total %d), want 1", len(mine), total)
	}

	all, total, err := h.service.ListFuelEntries(ctx, h.adminUserID, models.RoleAdmin, utils.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("admin sees %d entries (total %d), want 2", len(all), total)
	}

	if _, _, err := h.service.ListFuelEntries(ctx, primitive.NewObjectID(), models.RolePassenger, utils.DefaultPaginationParams()); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("passenger list err = %v, want ErrForbidden", err)
	}
}

func validLeaveInput() *LeaveRequestInput {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return &LeaveRequestInput{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 3),
		Reason:    "family function",
	}
}

func TestRequestLeave(t *testing.T) {
	h := newFleetHarness(t)

	leave, err := h.service.RequestLeave(context.Background(), h.driverUserID, validLeaveInput())
	if err != nil {
		t.Fatalf("request leave: %v", err)
	}

	if leave.Status != models.LeaveStatusPending {
		t.Errorf("status = %s, want pending", leave.Status)
	}
	if leave.DriverID != h.driver.ID {
		t.Error("leave not bound to calling driver")
	}
}

func TestRequestLeaveEndBeforeStart(t *testing.T) {
	h := newFleetHarness(t)

	input := validLeaveInput()
	input.EndDate = input.StartDate.AddDate(0, 0, -1)

	if _, err := h.service.RequestLeave(context.Background(), h.driverUserID, input); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestReviewLeave(t *testing.T) {
	h := newFleetHarness(t)
	ctx := context.Background()

	leave, err := h.service.RequestLeave(ctx, h.driverUserID, validLeaveInput())
	if err != nil {
		t.Fatalf("request leave: %v", err)
	}

	reviewed, err := h.service.ReviewLeave(ctx, h.adminUserID, leave.ID, &ReviewLeaveRequest{
		Decision: "approved",
		Comments: "enjoy",
	})
	if err != nil {
		t.Fatalf("review: %v", err)
	}

	if reviewed.Status != models.LeaveStatusApproved {
		t.Errorf("status = %s, want approved", reviewed.Status)
	}
	if reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != h.adminUserID {
		t.Error("reviewed_by not recorded")
	}
	if reviewed.ReviewedAt == nil {
		t.Error("reviewed_at not stamped")
	}

	// A resolved request cannot be reviewed again.
	if _, err := h.service.ReviewLeave(ctx, h.adminUserID, leave.ID, &ReviewLeaveRequest{Decision: "rejected"}); !errors.Is(err, utils.ErrInvalidTransition) {
		t.Fatalf("second review err = %v, want ErrInvalidTransition", err)
	}
}

func TestReviewLeaveBadDecision(t *testing.T) {
	h := newFleetHarness(t)
	ctx := context.Background()

	leave, err := h.service.RequestLeave(ctx, h.driverUserID, validLeaveInput())
	if err != nil {
		t.Fatalf("request leave: %v", err)
	}

	if _, err := h.service.ReviewLeave(ctx, h.adminUserID, leave.ID, &ReviewLeaveRequest{Decision: "maybe"}); !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestReviewLeaveUnknown(t *testing.T) {
	h := newFleetHarness(t)

	if _, err := h.service.ReviewLeave(context.Background(), h.adminUserID, primitive.NewObjectID(), &ReviewLeaveRequest{Decision: "approved"}); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListLeaveRequestsScopedByRole(t *testing.T) {
	h := newFleetHarness(t)
	ctx := context.Background()

	if _, err := h.service.RequestLeave(ctx, h.driverUserID, validLeaveInput()); err != nil {
		t.Fatalf("request leave: %v", err)
	}

	mine, total, err := h.service.ListLeaveRequests(ctx, h.driverUserID, models.RoleDriver, utils.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("list as driver: %v", err)
	}
	if total != 1 || len(mine) != 1 {
		t.Fatalf("driver sees %d requests, want 1", len(mine))
	}

	if _, _, err := h.service.ListLeaveRequests(ctx, primitive.NewObjectID(), models.RolePassenger, utils.DefaultPaginationParams()); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("passenger list err = %v, want ErrForbidden", err)
	}
}
