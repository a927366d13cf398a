package engine

import (
	"testing"
	"time"

	"fleetflow-service/internal/domain/fleet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expiryIn(days int) *time.Time {
	t := testNow.AddDate(0, 0, days)
	return &t
}

// servedVehicle returns a vehicle plus a fresh completed service record so
// the predictive feed stays quiet about it.
func servedVehicle(id, name string) (fleet.Vehicle, fleet.MaintenanceRecord) {
	v := fleet.Vehicle{ID: id, Name: name, LicensePlate: "KA-" + id, Status: fleet.VehicleAvailable, Odometer: 40000}
	m := fleet.MaintenanceRecord{
		ID: "m-" + id, VehicleID: id, ServiceType: "Oil Change", Cost: 4000,
		Date: testNow.AddDate(0, 0, -10), Status: fleet.MaintenanceCompleted, MileageAtService: 39000,
	}
	return v, m
}

func TestSystemAlerts_OrderedBySeverity(t *testing.T) {
	e := newTestEngine()
	v1, m1 := servedVehicle("v1", "Volvo FH16")
	v2, m2 := servedVehicle("v2", "Tata Ace")
	e.Load(fleet.Snapshot{
		Vehicles:    []fleet.Vehicle{v1, v2},
		Maintenance: []fleet.MaintenanceRecord{m1, m2},
		Drivers: []fleet.Driver{
			{ID: "d1", Name: "Amit Sharma", LicenseExpiry: expiryIn(30), LicenseStatus: fleet.LicenseExpiring},
		},
		Trips: []fleet.Trip{
			{ID: "t1", VehicleID: "v2", Status: fleet.TripDraft, Origin: "Pune", Destination: "Nashik", CreatedAt: testNow.AddDate(0, 0, -3)},
		},
		Incidents: []fleet.Incident{
			{ID: "i1", VehicleID: "v1", Severity: fleet.SeverityMajor, Description: "Rear-end collision", Status: fleet.IncidentOpen},
		},
	})

	got := e.SystemAlerts()
	require.Len(t, got, 3)
	assert.Equal(t, fleet.AlertCritical, got[0].Severity)
	assert.Equal(t, "incident", got[0].Category)
	assert.Equal(t, fleet.AlertWarning, got[1].Severity)
	assert.Equal(t, "driver", got[1].Category)
	assert.Equal(t, fleet.AlertInfo, got[2].Severity)
	assert.Equal(t, "trip", got[2].Category)
}

func TestSystemAlerts_StableWithinRank(t *testing.T) {
	e := newTestEngine()
	v1, m1 := servedVehicle("v1", "Volvo FH16")
	e.Load(fleet.Snapshot{
		Vehicles:    []fleet.Vehicle{v1},
		Maintenance: []fleet.MaintenanceRecord{m1},
		Drivers: []fleet.Driver{
			{ID: "d1", Name: "Amit Sharma", LicenseExpiry: expiryIn(5), LicenseStatus: fleet.LicenseExpiring},
		},
		Incidents: []fleet.Incident{
			{ID: "i1", VehicleID: "v1", Severity: fleet.SeverityCritical, Description: "Fire", Status: fleet.IncidentOpen},
		},
	})

	// both critical: incidents are appended before licenses, so they stay first
	got := e.SystemAlerts()
	require.Len(t, got, 2)
	assert.Equal(t, "inc-i1", got[0].ID)
	assert.Equal(t, "license-d1", got[1].ID)
}

func TestIncidentAlerts_SeverityMapping(t *testing.T) {
	e := newTestEngine()
	v1, m1 := servedVehicle("v1", "Volvo FH16")
	e.Load(fleet.Snapshot{
		Vehicles:    []fleet.Vehicle{v1},
		Maintenance: []fleet.MaintenanceRecord{m1},
		Incidents: []fleet.Incident{
			{ID: "i1", VehicleID: "v1", Severity: fleet.SeverityMinor, Description: "Scratched panel", Status: fleet.IncidentOpen},
			{ID: "i2", VehicleID: "v1", Severity: fleet.SeverityMajor, Description: "Collision", Status: fleet.IncidentOpen},
			{ID: "i3", VehicleID: "v1", Severity: fleet.SeverityCritical, Description: "Rollover", Status: fleet.IncidentClosed},
		},
	})

	got := e.SystemAlerts()
	require.Len(t, got, 2) // closed incident excluded
	assert.Equal(t, "inc-i2", got[0].ID)
	assert.Equal(t, fleet.AlertCritical, got[0].Severity)
	assert.Equal(t, "inc-i1", got[1].ID)
	assert.Equal(t, fleet.AlertWarning, got[1].Severity)
	assert.Contains(t, got[1].Title, "Volvo FH16")
}

func TestLicenseAlerts_Windows(t *testing.T) {
	tests := []struct {
		name     string
		daysLeft int
		severity fleet.AlertSeverity
		want     bool
	}{
		{"far out", 70, "", false},
		{"at warn boundary", 60, fleet.AlertWarning, true},
		{"inside warn window", 30, fleet.AlertWarning, true},
		{"at critical boundary", 14, fleet.AlertCritical, true},
		{"almost expired", 3, fleet.AlertCritical, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			e.Load(fleet.Snapshot{Drivers: []fleet.Driver{
				{ID: "d1", Name: "Amit Sharma", LicenseExpiry: expiryIn(tc.daysLeft), LicenseStatus: fleet.LicenseValid},
			}})
			got := e.SystemAlerts()
			if !tc.want {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tc.severity, got[0].Severity)
			assert.Equal(t, "d1", got[0].DriverID)
		})
	}
}

func TestLicenseAlerts_AlreadyExpired(t *testing.T) {
	e := newTestEngine()
	e.Load(fleet.Snapshot{Drivers: []fleet.Driver{
		{ID: "d1", Name: "Amit Sharma", LicenseExpiry: expiryIn(-4), LicenseStatus: fleet.LicenseExpiring},
	}})

	got := e.SystemAlerts()
	require.Len(t, got, 1)
	assert.Equal(t, fleet.AlertCritical, got[0].Severity)
	assert.Equal(t, "license has already expired", got[0].Detail)
}

func TestLicenseAlerts_SkipsExpiredStatusAndNilExpiry(t *testing.T) {
	e := newTestEngine()
	e.Load(fleet.Snapshot{Drivers: []fleet.Driver{
		{ID: "d1", Name: "Amit Sharma", LicenseExpiry: expiryIn(-100), LicenseStatus: fleet.LicenseExpired},
		{ID: "d2", Name: "Priya Patel", LicenseStatus: fleet.LicenseValid},
	}})

	assert.Empty(t, e.SystemAlerts())
}

func TestStaleDraftAlerts_AgeWindows(t *testing.T) {
	tests := []struct {
		name     string
		ageDays  int
		severity fleet.AlertSeverity
		want     bool
	}{
		{"fresh draft", 1, "", false},
		{"two days old", 2, fleet.AlertInfo, true},
		{"four days old", 4, fleet.AlertInfo, true},
		{"five days old", 5, fleet.AlertCritical, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine()
			v1, m1 := servedVehicle("v1", "Volvo FH16")
			e.Load(fleet.Snapshot{
				Vehicles:    []fleet.Vehicle{v1},
				Maintenance: []fleet.MaintenanceRecord{m1},
				Trips: []fleet.Trip{{
					ID: "t1", VehicleID: "v1", Status: fleet.TripDraft,
					CargoDesc: "Steel coils", Origin: "Mumbai", Destination: "Delhi",
					CreatedAt: testNow.AddDate(0, 0, -tc.ageDays),
				}},
			})
			got := e.SystemAlerts()
			if !tc.want {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, tc.severity, got[0].Severity)
			assert.Equal(t, "trip-t1", got[0].ID)
			assert.Contains(t, got[0].Title, "T1")
			assert.Contains(t, got[0].Detail, "Steel coils")
		})
	}
}

func TestStaleDraftAlerts_IgnoresDispatchedTrips(t *testing.T) {
	e := newTestEngine()
	v1, m1 := servedVehicle("v1", "Volvo FH16")
	e.Load(fleet.Snapshot{
		Vehicles:    []fleet.Vehicle{v1},
		Maintenance: []fleet.MaintenanceRecord{m1},
		Trips: []fleet.Trip{{
			ID: "t1", VehicleID: "v1", Status: fleet.TripDispatched,
			Origin: "Mumbai", Destination: "Delhi", CreatedAt: testNow.AddDate(0, 0, -10),
		}},
	})

	assert.Empty(t, e.SystemAlerts())
}

func TestMaintenanceAlerts_PicksWorstFinding(t *testing.T) {
	e := newTestEngine()
	// 12000 km over (warning) and 140 days since service (critical): the
	// feed entry must carry the critical finding.
	e.Load(fleet.Snapshot{
		Vehicles: []fleet.Vehicle{{
			ID: "v1", Name: "Ashok Leyland", LicensePlate: "TN-11",
			Status: fleet.VehicleAvailable, Odometer: 52000,
		}},
		Maintenance: []fleet.MaintenanceRecord{{
			ID: "m1", VehicleID: "v1", ServiceType: "Full Service", Cost: 12000,
			Date: testNow.AddDate(0, 0, -140), Status: fleet.MaintenanceCompleted, MileageAtService: 40000,
		}},
	})

	got := e.SystemAlerts()
	require.Len(t, got, 1)
	assert.Equal(t, "maint-v1", got[0].ID)
	assert.Equal(t, fleet.AlertCritical, got[0].Severity)
	assert.Contains(t, got[0].Detail, "140 days since last service")
}
