package engine

import (
	"testing"

	"fleetflow-service/internal/domain/fleet"
	xerrors "fleetflow-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFinanceFixture(e *Engine, v fleet.Vehicle, fuelCost, maintCost float64) {
	snap := fleet.Snapshot{Vehicles: []fleet.Vehicle{v}}
	if fuelCost > 0 {
		snap.FuelLogs = []fleet.FuelLog{{ID: "f1", VehicleID: v.ID, Liters: 180, Cost: fuelCost, Date: testNow}}
	}
	if maintCost > 0 {
		snap.Maintenance = []fleet.MaintenanceRecord{{
			ID: "m1", VehicleID: v.ID, ServiceType: "Engine Overhaul", Cost: maintCost,
			Date: testNow, Status: fleet.MaintenanceCompleted,
		}}
	}
	e.Load(snap)
}

func TestFinancialRisks_LossAndPoorROI(t *testing.T) {
	e := newTestEngine()
	loadFinanceFixture(e, fleet.Vehicle{
		ID: "v1", Name: "Volvo FH16", LicensePlate: "KA-01", Status: fleet.VehicleAvailable,
		AcquisitionCost: 4500000, Revenue: 1000000,
	}, 800000, 300000)

	got := e.FinancialRisks()
	require.Len(t, got, 1)
	risk := got[0]

	assert.Equal(t, 1100000.0, risk.TotalCost)
	assert.InDelta(t, -2.2, risk.ROI, 0.05)
	require.Len(t, risk.Risks, 2)
	assert.Contains(t, risk.Risks[0], "operating at a loss")
	assert.Contains(t, risk.Risks[1], "poor ROI")
}

func TestFinancialRisks_HighMaintenanceBurden(t *testing.T) {
	e := newTestEngine()
	// maintenance is 25% of revenue but the vehicle is still profitable
	loadFinanceFixture(e, fleet.Vehicle{
		ID: "v1", Name: "Scania P410", LicensePlate: "UP-07", Status: fleet.VehicleAvailable,
		AcquisitionCost: 1000000, Revenue: 1200000,
	}, 100000, 300000)

	got := e.FinancialRisks()
	require.Len(t, got, 1)
	require.Len(t, got[0].Risks, 1)
	assert.Contains(t, got[0].Risks[0], "high maintenance")
}

func TestFinancialRisks_HealthyVehicleExcluded(t *testing.T) {
	e := newTestEngine()
	loadFinanceFixture(e, fleet.Vehicle{
		ID: "v1", Name: "Volvo FH16", LicensePlate: "KA-01", Status: fleet.VehicleAvailable,
		AcquisitionCost: 1000000, Revenue: 2000000,
	}, 100000, 100000)

	assert.Empty(t, e.FinancialRisks())
}

func TestFinancialRisks_ZeroRevenueNeverALoss(t *testing.T) {
	e := newTestEngine()
	// cost with no revenue: loss and burden rules stay quiet, ROI still fires
	loadFinanceFixture(e, fleet.Vehicle{
		ID: "v1", Name: "Mercedes Actros", LicensePlate: "AP-08", Status: fleet.VehicleAvailable,
		AcquisitionCost: 7500000, Revenue: 0,
	}, 50000, 0)

	got := e.FinancialRisks()
	require.Len(t, got, 1)
	require.Len(t, got[0].Risks, 1)
	assert.Contains(t, got[0].Risks[0], "poor ROI")
}

func TestVehicleCostsAndROI(t *testing.T) {
	e := newTestEngine()
	loadFinanceFixture(e, fleet.Vehicle{
		ID: "v1", Name: "Volvo FH16", LicensePlate: "KA-01", Status: fleet.VehicleAvailable,
		Odometer: 45230, AcquisitionCost: 4500000, Revenue: 1200000,
	}, 34000, 5500)

	costs, err := e.VehicleCosts("v1")
	require.NoError(t, err)
	assert.Equal(t, 34000.0, costs.FuelCost)
	assert.Equal(t, 5500.0, costs.MaintenanceCost)
	assert.Equal(t, 39500.0, costs.Total)

	roi, err := e.VehicleROI("v1")
	require.NoError(t, err)
	assert.InDelta(t, (1200000.0-39500.0)/4500000.0*100, roi, 0.0001)

	perKm, err := e.CostPerKm("v1")
	require.NoError(t, err)
	assert.InDelta(t, 39500.0/45230.0, perKm, 0.0001)

	_, err = e.VehicleCosts("missing")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestVehicleROI_ZeroWithoutAcquisitionCost(t *testing.T) {
	e := newTestEngine()
	loadFinanceFixture(e, fleet.Vehicle{
		ID: "v1", Name: "Volvo FH16", LicensePlate: "KA-01", Status: fleet.VehicleAvailable, Revenue: 500000,
	}, 10000, 0)

	roi, err := e.VehicleROI("v1")
	require.NoError(t, err)
	assert.Zero(t, roi)
}

func TestCostPerKm_ZeroOdometer(t *testing.T) {
	e := newTestEngine()
	loadFinanceFixture(e, fleet.Vehicle{
		ID: "v1", Name: "New Truck", LicensePlate: "KA-09", Status: fleet.VehicleAvailable,
	}, 5000, 0)

	perKm, err := e.CostPerKm("v1")
	require.NoError(t, err)
	assert.Zero(t, perKm)
}

func TestDriverTripStats(t *testing.T) {
	e := newTestEngine()
	e.Load(fleet.Snapshot{
		Drivers: []fleet.Driver{{ID: "d1", Name: "Amit Sharma", LicenseNumber: "DL-2"}},
		Trips: []fleet.Trip{
			{ID: "t1", DriverID: "d1", Status: fleet.TripCompleted, CreatedAt: testNow},
			{ID: "t2", DriverID: "d1", Status: fleet.TripCompleted, CreatedAt: testNow},
			{ID: "t3", DriverID: "d1", Status: fleet.TripCancelled, CreatedAt: testNow},
			{ID: "t4", DriverID: "other", Status: fleet.TripCompleted, CreatedAt: testNow},
		},
	})

	stats, err := e.DriverTripStats("d1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 67, stats.CompletionRate)

	_, err = e.DriverTripStats("missing")
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSummary(t *testing.T) {
	e := newTestEngine()
	e.Load(fleet.Snapshot{
		Vehicles: []fleet.Vehicle{
			{ID: "v1", Status: fleet.VehicleAvailable},
			{ID: "v2", Status: fleet.VehicleOnTrip},
			{ID: "v3", Status: fleet.VehicleInShop},
			{ID: "v4", Status: fleet.VehicleOutOfService},
		},
		Drivers: []fleet.Driver{
			{ID: "d1", DutyStatus: fleet.DutyOn},
			{ID: "d2", DutyStatus: fleet.DutyOff},
		},
		Trips: []fleet.Trip{
			{ID: "t1", Status: fleet.TripDraft, CreatedAt: testNow},
			{ID: "t2", Status: fleet.TripDispatched, CreatedAt: testNow},
			{ID: "t3", Status: fleet.TripCompleted, CreatedAt: testNow},
		},
		Incidents: []fleet.Incident{
			{ID: "i1", Status: fleet.IncidentOpen},
			{ID: "i2", Status: fleet.IncidentClosed},
		},
	})

	s := e.Summary()
	assert.Equal(t, 4, s.Vehicles)
	assert.Equal(t, 1, s.Available)
	assert.Equal(t, 1, s.OnTrip)
	assert.Equal(t, 1, s.InShop)
	assert.Equal(t, 1, s.OutOfService)
	assert.Equal(t, 2, s.Drivers)
	assert.Equal(t, 1, s.OnDuty)
	assert.Equal(t, 2, s.ActiveTrips)
	assert.Equal(t, 1, s.OpenIncidents)
}
