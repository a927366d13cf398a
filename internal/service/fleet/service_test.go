package fleet

import (
	"context"
	"errors"
	"testing"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore records every persistence call and can be told to fail.
type stubStore struct {
	calls   []string
	failAll bool

	lastTrip    *fleet.Trip
	lastVehicle *fleet.Vehicle
	lastDriver  *fleet.Driver
}

func (s *stubStore) err() error {
	if s.failAll {
		return errors.New("storage down")
	}
	return nil
}

func (s *stubStore) Load(ctx context.Context) (*fleet.Snapshot, error) {
	s.calls = append(s.calls, "load")
	return &fleet.Snapshot{}, s.err()
}

func (s *stubStore) SaveVehicle(ctx context.Context, v *fleet.Vehicle) error {
	s.calls = append(s.calls, "save_vehicle")
	s.lastVehicle = v
	return s.err()
}

func (s *stubStore) DeleteVehicle(ctx context.Context, id string) error {
	s.calls = append(s.calls, "delete_vehicle")
	return s.err()
}

func (s *stubStore) SaveDriver(ctx context.Context, d *fleet.Driver) error {
	s.calls = append(s.calls, "save_driver")
	s.lastDriver = d
	return s.err()
}

func (s *stubStore) DeleteDriver(ctx context.Context, id string) error {
	s.calls = append(s.calls, "delete_driver")
	return s.err()
}

func (s *stubStore) SaveTrip(ctx context.Context, t *fleet.Trip) error {
	s.calls = append(s.calls, "save_trip")
	s.lastTrip = t
	return s.err()
}

func (s *stubStore) SaveMaintenance(ctx context.Context, m *fleet.MaintenanceRecord) error {
	s.calls = append(s.calls, "save_maintenance")
	return s.err()
}

func (s *stubStore) SaveFuelLog(ctx context.Context, f *fleet.FuelLog) error {
	s.calls = append(s.calls, "save_fuel_log")
	return s.err()
}

func (s *stubStore) SaveExpense(ctx context.Context, x *fleet.Expense) error {
	s.calls = append(s.calls, "save_expense")
	return s.err()
}

func (s *stubStore) SaveTripTransition(ctx context.Context, t *fleet.Trip, v *fleet.Vehicle, d *fleet.Driver) error {
	s.calls = append(s.calls, "save_trip_transition")
	s.lastTrip, s.lastVehicle, s.lastDriver = t, v, d
	return s.err()
}

func (s *stubStore) SaveMaintenanceResult(ctx context.Context, m *fleet.MaintenanceRecord, v *fleet.Vehicle) error {
	s.calls = append(s.calls, "save_maintenance_result")
	s.lastVehicle = v
	return s.err()
}

func (s *stubStore) SaveIncidentResult(ctx context.Context, inc *fleet.Incident, v *fleet.Vehicle, t *fleet.Trip, d *fleet.Driver) error {
	s.calls = append(s.calls, "save_incident_result")
	s.lastVehicle, s.lastTrip, s.lastDriver = v, t, d
	return s.err()
}

type stubActivity struct {
	entries []fleet.Activity
}

func (s *stubActivity) Append(ctx context.Context, a *fleet.Activity) error {
	s.entries = append(s.entries, *a)
	return nil
}

func (s *stubActivity) Recent(ctx context.Context, limit int) ([]fleet.Activity, error) {
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]fleet.Activity, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *stubStore, *stubActivity) {
	t.Helper()
	store := &stubStore{}
	activity := &stubActivity{}
	svc := NewService(engine.New(nil), store, activity, nil, nil)
	return svc, store, activity
}

func TestAddVehicle_PersistsAndRecordsActivity(t *testing.T) {
	svc, store, activity := newTestService(t)

	v, err := svc.AddVehicle(context.Background(), fleet.CreateVehicleRequest{
		Name:         "Volvo FH16",
		LicensePlate: "ka-01-ab-1234",
		MaxCapacity:  25000,
	})
	require.NoError(t, err)

	assert.Contains(t, store.calls, "save_vehicle")
	assert.Equal(t, v.ID, store.lastVehicle.ID)
	require.Len(t, activity.entries, 1)
	assert.Equal(t, "vehicle", activity.entries[0].Type)
	assert.Contains(t, activity.entries[0].Message, "KA-01-AB-1234")
}

func TestAddVehicle_RejectedCommandSkipsPersistence(t *testing.T) {
	svc, store, activity := newTestService(t)

	_, err := svc.AddVehicle(context.Background(), fleet.CreateVehicleRequest{Name: "No Plate"})
	require.Error(t, err)
	assert.Empty(t, store.calls)
	assert.Empty(t, activity.entries)
}

func TestDispatchTrip_PersistsFullTransition(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.AddVehicle(ctx, fleet.CreateVehicleRequest{Name: "Volvo FH16", LicensePlate: "KA-01", MaxCapacity: 25000})
	require.NoError(t, err)
	d, err := svc.AddDriver(ctx, fleet.CreateDriverRequest{Name: "Rajesh Kumar", LicenseNumber: "DL-1", LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck}})
	require.NoError(t, err)
	trip, err := svc.AddTrip(ctx, fleet.CreateTripRequest{
		VehicleID: v.ID, DriverID: d.ID, CargoWeight: 10000, Origin: "Mumbai", Destination: "Delhi",
	})
	require.NoError(t, err)

	dispatched, err := svc.DispatchTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, fleet.TripDispatched, dispatched.Status)

	assert.Contains(t, store.calls, "save_trip_transition")
	require.NotNil(t, store.lastVehicle)
	assert.Equal(t, fleet.VehicleOnTrip, store.lastVehicle.Status)
	require.NotNil(t, store.lastDriver)
	assert.Equal(t, fleet.DutyOn, store.lastDriver.DutyStatus)
}

func TestCommands_SucceedWhenStorageFails(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.failAll = true

	v, err := svc.AddVehicle(context.Background(), fleet.CreateVehicleRequest{
		Name: "Volvo FH16", LicensePlate: "KA-01",
	})
	require.NoError(t, err)

	// engine stays authoritative even when the mirror write failed
	got, err := svc.Vehicle(v.ID)
	require.NoError(t, err)
	assert.Equal(t, "KA-01", got.LicensePlate)
}

func TestReportIncident_RecordsCascadeActivity(t *testing.T) {
	svc, _, activity := newTestService(t)
	ctx := context.Background()

	v, err := svc.AddVehicle(ctx, fleet.CreateVehicleRequest{Name: "Volvo FH16", LicensePlate: "KA-01", MaxCapacity: 25000})
	require.NoError(t, err)
	d, err := svc.AddDriver(ctx, fleet.CreateDriverRequest{Name: "Rajesh Kumar", LicenseNumber: "DL-1", LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck}})
	require.NoError(t, err)
	trip, err := svc.AddTrip(ctx, fleet.CreateTripRequest{
		VehicleID: v.ID, DriverID: d.ID, CargoWeight: 5000, Origin: "Pune", Destination: "Nashik",
	})
	require.NoError(t, err)
	_, err = svc.DispatchTrip(ctx, trip.ID)
	require.NoError(t, err)

	before := len(activity.entries)
	_, err = svc.ReportIncident(ctx, fleet.ReportIncidentRequest{
		VehicleID: v.ID, Severity: fleet.SeverityMajor, Description: "Collision",
	})
	require.NoError(t, err)

	// one entry for the incident, one for the suspended driver
	require.Len(t, activity.entries, before+2)
	assert.Contains(t, activity.entries[before].Message, "incident reported")
	assert.Contains(t, activity.entries[before+1].Message, "Suspended")
}

func TestRecentActivity_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddVehicle(ctx, fleet.CreateVehicleRequest{Name: "First Truck", LicensePlate: "KA-01"})
	require.NoError(t, err)
	_, err = svc.AddVehicle(ctx, fleet.CreateVehicleRequest{Name: "Second Truck", LicensePlate: "KA-02"})
	require.NoError(t, err)

	entries, err := svc.RecentActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "Second Truck")
}
