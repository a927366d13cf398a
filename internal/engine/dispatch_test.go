package engine

import (
	"testing"

	"fleetflow-service/internal/domain/fleet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmartDispatch_TightestFit(t *testing.T) {
	e := newTestEngine()
	addVehicle(t, e, "Scania P410", "UP-07", fleet.VehicleTypeTruck, 25000)
	small := addVehicle(t, e, "Tata Prima", "MH-02", fleet.VehicleTypeTruck, 18000)
	addDriver(t, e, "Rajesh Kumar", "DL-1", fleet.VehicleTypeTruck)

	rec := e.SmartDispatch(15000, "")
	require.NotNil(t, rec)
	require.NotNil(t, rec.Vehicle)
	// surplus 3000 beats surplus 10000
	assert.Equal(t, small.ID, rec.Vehicle.ID)
}

func TestSmartDispatch_TiesKeepCollectionOrder(t *testing.T) {
	e := newTestEngine()
	first := addVehicle(t, e, "Volvo FH16", "KA-01", fleet.VehicleTypeTruck, 20000)
	addVehicle(t, e, "Tata Prima", "MH-02", fleet.VehicleTypeTruck, 20000)
	d1 := addDriver(t, e, "Rajesh Kumar", "DL-1", fleet.VehicleTypeTruck)
	addDriver(t, e, "Amit Sharma", "DL-2", fleet.VehicleTypeTruck)

	rec := e.SmartDispatch(10000, "")
	require.NotNil(t, rec)
	assert.Equal(t, first.ID, rec.Vehicle.ID)
	// equal safety scores: first driver wins
	assert.Equal(t, d1.ID, rec.Driver.ID)
}

func TestSmartDispatch_BestDriverBySafetyScore(t *testing.T) {
	e := newTestEngine()
	addVehicle(t, e, "Volvo FH16", "KA-01", fleet.VehicleTypeTruck, 25000)

	lowScore := 82
	_, err := e.AddDriver(fleet.CreateDriverRequest{
		Name: "Vikram Reddy", LicenseNumber: "DL-1", SafetyScore: &lowScore,
		LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck},
	})
	require.NoError(t, err)
	highScore := 95
	best, err := e.AddDriver(fleet.CreateDriverRequest{
		Name: "Manoj Singh", LicenseNumber: "DL-2", SafetyScore: &highScore,
		LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck},
	})
	require.NoError(t, err)

	rec := e.SmartDispatch(10000, "")
	require.NotNil(t, rec)
	require.NotNil(t, rec.Driver)
	assert.Equal(t, best.ID, rec.Driver.ID)
}

func TestSmartDispatch_TypeHintFiltersDrivers(t *testing.T) {
	e := newTestEngine()
	addVehicle(t, e, "Volvo FH16", "KA-01", fleet.VehicleTypeTruck, 25000)
	vanOnly := addDriver(t, e, "Suresh Patel", "DL-1", fleet.VehicleTypeVan)
	addDriver(t, e, "Rajesh Kumar", "DL-2", fleet.VehicleTypeTruck)

	// without a hint the chosen vehicle's type applies
	rec := e.SmartDispatch(10000, "")
	require.NotNil(t, rec)
	require.NotNil(t, rec.Driver)
	assert.NotEqual(t, vanOnly.ID, rec.Driver.ID)

	// an explicit hint overrides the vehicle's type
	rec = e.SmartDispatch(10000, fleet.VehicleTypeVan)
	require.NotNil(t, rec)
	require.NotNil(t, rec.Driver)
	assert.Equal(t, vanOnly.ID, rec.Driver.ID)
}

func TestSmartDispatch_ExcludesUnavailable(t *testing.T) {
	e := newTestEngine()
	v := addVehicle(t, e, "Volvo FH16", "KA-01", fleet.VehicleTypeTruck, 25000)
	d := addDriver(t, e, "Rajesh Kumar", "DL-1", fleet.VehicleTypeTruck)
	trip := addDraftTrip(t, e, v.ID, d.ID, 10000)
	_, err := e.DispatchTrip(trip.ID)
	require.NoError(t, err)

	// vehicle is on trip, driver on duty: nothing to recommend
	assert.Nil(t, e.SmartDispatch(10000, ""))
}

func TestSmartDispatch_PartialResult(t *testing.T) {
	e := newTestEngine()

	// driver only: no vehicle can take the load
	addDriver(t, e, "Rajesh Kumar", "DL-1", fleet.VehicleTypeTruck)
	rec := e.SmartDispatch(40000, "")
	require.NotNil(t, rec)
	assert.Nil(t, rec.Vehicle)
	require.NotNil(t, rec.Driver)

	// vehicle only: driver licenses do not cover the type
	e2 := newTestEngine()
	addVehicle(t, e2, "Volvo FH16", "KA-01", fleet.VehicleTypeTruck, 25000)
	addDriver(t, e2, "Suresh Patel", "DL-1", fleet.VehicleTypeVan)
	rec = e2.SmartDispatch(10000, "")
	require.NotNil(t, rec)
	require.NotNil(t, rec.Vehicle)
	assert.Nil(t, rec.Driver)
}

func TestSmartDispatch_ExactCapacityFits(t *testing.T) {
	e := newTestEngine()
	v := addVehicle(t, e, "Volvo FH16", "KA-01", fleet.VehicleTypeTruck, 25000)
	addDriver(t, e, "Rajesh Kumar", "DL-1", fleet.VehicleTypeTruck)

	rec := e.SmartDispatch(25000, "")
	require.NotNil(t, rec)
	require.NotNil(t, rec.Vehicle)
	assert.Equal(t, v.ID, rec.Vehicle.ID)
}

func TestAvailableDrivers(t *testing.T) {
	e := newTestEngine()
	ok := addDriver(t, e, "Rajesh Kumar", "DL-1", fleet.VehicleTypeTruck)
	expired, err := e.AddDriver(fleet.CreateDriverRequest{
		Name: "Suresh Patel", LicenseNumber: "DL-2",
		LicenseStatus: fleet.LicenseExpired, LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck},
	})
	require.NoError(t, err)

	got := e.AvailableDrivers(fleet.VehicleTypeTruck)
	require.Len(t, got, 1)
	assert.Equal(t, ok.ID, got[0].ID)
	_ = expired
}
