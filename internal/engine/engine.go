package engine

import (
	"strings"
	"sync"
	"time"

	"fleetflow-service/internal/domain/fleet"
	xerrors "fleetflow-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Engine owns the canonical in-memory fleet state and applies all state
// transitions. Commands are atomic: every precondition is checked before the
// first field is touched, so a failed command leaves the store unchanged.
// Collections keep insertion order; dispatch and alert tie-breaking rely on it.
type Engine struct {
	mu     sync.Mutex
	logger *zap.Logger

	// injectable clock, overridden in tests
	now func() time.Time

	vehicles    []fleet.Vehicle
	drivers     []fleet.Driver
	trips       []fleet.Trip
	maintenance []fleet.MaintenanceRecord
	fuelLogs    []fleet.FuelLog
	expenses    []fleet.Expense
	incidents   []fleet.Incident
}

func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
		now:    time.Now,
	}
}

// Load replaces the owned entity collections, typically with the persisted
// state at startup.
func (e *Engine) Load(snap fleet.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vehicles = append([]fleet.Vehicle(nil), snap.Vehicles...)
	e.drivers = append([]fleet.Driver(nil), snap.Drivers...)
	e.trips = append([]fleet.Trip(nil), snap.Trips...)
	e.maintenance = append([]fleet.MaintenanceRecord(nil), snap.Maintenance...)
	e.fuelLogs = append([]fleet.FuelLog(nil), snap.FuelLogs...)
	e.expenses = append([]fleet.Expense(nil), snap.Expenses...)
	e.incidents = append([]fleet.Incident(nil), snap.Incidents...)
	e.logger.Info("fleet state loaded",
		zap.Int("vehicles", len(e.vehicles)),
		zap.Int("drivers", len(e.drivers)),
		zap.Int("trips", len(e.trips)),
	)
}

// Snapshot returns a copy of every entity collection.
func (e *Engine) Snapshot() fleet.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fleet.Snapshot{
		Vehicles:    append([]fleet.Vehicle(nil), e.vehicles...),
		Drivers:     append([]fleet.Driver(nil), e.drivers...),
		Trips:       append([]fleet.Trip(nil), e.trips...),
		Maintenance: append([]fleet.MaintenanceRecord(nil), e.maintenance...),
		FuelLogs:    append([]fleet.FuelLog(nil), e.fuelLogs...),
		Expenses:    append([]fleet.Expense(nil), e.expenses...),
		Incidents:   append([]fleet.Incident(nil), e.incidents...),
	}
}

// newID generates a prefixed opaque id ("v…", "d…", "t…"). IDs are never
// reused.
func newID(prefix string) string {
	return prefix + strings.ToLower(ulid.Make().String())
}

// ========== Read interface ==========

func (e *Engine) Vehicles() []fleet.Vehicle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fleet.Vehicle(nil), e.vehicles...)
}

func (e *Engine) Vehicle(id string) (*fleet.Vehicle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.findVehicle(id)
	if v == nil {
		return nil, xerrors.NotFoundf("vehicle %s", id)
	}
	out := *v
	return &out, nil
}

func (e *Engine) Drivers() []fleet.Driver {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fleet.Driver(nil), e.drivers...)
}

func (e *Engine) Driver(id string) (*fleet.Driver, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.findDriver(id)
	if d == nil {
		return nil, xerrors.NotFoundf("driver %s", id)
	}
	out := *d
	return &out, nil
}

func (e *Engine) Trips() []fleet.Trip {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fleet.Trip(nil), e.trips...)
}

func (e *Engine) Trip(id string) (*fleet.Trip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t := e.findTrip(id)
	if t == nil {
		return nil, xerrors.NotFoundf("trip %s", id)
	}
	out := *t
	return &out, nil
}

func (e *Engine) MaintenanceRecords() []fleet.MaintenanceRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fleet.MaintenanceRecord(nil), e.maintenance...)
}

func (e *Engine) MaintenanceRecord(id string) (*fleet.MaintenanceRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.maintenance {
		if e.maintenance[i].ID == id {
			out := e.maintenance[i]
			return &out, nil
		}
	}
	return nil, xerrors.NotFoundf("maintenance record %s", id)
}

func (e *Engine) FuelLogs() []fleet.FuelLog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fleet.FuelLog(nil), e.fuelLogs...)
}

func (e *Engine) Expenses() []fleet.Expense {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fleet.Expense(nil), e.expenses...)
}

func (e *Engine) Incidents() []fleet.Incident {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fleet.Incident(nil), e.incidents...)
}

// ========== Internal lookups (caller holds e.mu) ==========

func (e *Engine) findVehicle(id string) *fleet.Vehicle {
	for i := range e.vehicles {
		if e.vehicles[i].ID == id {
			return &e.vehicles[i]
		}
	}
	return nil
}

func (e *Engine) findDriver(id string) *fleet.Driver {
	for i := range e.drivers {
		if e.drivers[i].ID == id {
			return &e.drivers[i]
		}
	}
	return nil
}

func (e *Engine) findTrip(id string) *fleet.Trip {
	for i := range e.trips {
		if e.trips[i].ID == id {
			return &e.trips[i]
		}
	}
	return nil
}

// daysBetween counts whole days from a to b, matching a calendar-style
// "days since" reading.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
