package fleet

import (
	"context"
	"strings"
	"time"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/engine"
	"fleetflow-service/internal/websocket"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Store mirrors accepted commands into durable storage.
type Store interface {
	Load(ctx context.Context) (*fleet.Snapshot, error)
	SaveVehicle(ctx context.Context, v *fleet.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
	SaveDriver(ctx context.Context, d *fleet.Driver) error
	DeleteDriver(ctx context.Context, id string) error
	SaveTrip(ctx context.Context, t *fleet.Trip) error
	SaveMaintenance(ctx context.Context, m *fleet.MaintenanceRecord) error
	SaveFuelLog(ctx context.Context, f *fleet.FuelLog) error
	SaveExpense(ctx context.Context, x *fleet.Expense) error
	SaveTripTransition(ctx context.Context, t *fleet.Trip, v *fleet.Vehicle, d *fleet.Driver) error
	SaveMaintenanceResult(ctx context.Context, m *fleet.MaintenanceRecord, v *fleet.Vehicle) error
	SaveIncidentResult(ctx context.Context, inc *fleet.Incident, v *fleet.Vehicle, t *fleet.Trip, d *fleet.Driver) error
}

// ActivityStore persists the recent-activity audit feed.
type ActivityStore interface {
	Append(ctx context.Context, a *fleet.Activity) error
	Recent(ctx context.Context, limit int) ([]fleet.Activity, error)
}

// Service wraps the rules engine with persistence, the audit feed and live
// dashboard broadcasts. The engine is the source of truth: a storage failure
// after an accepted command is logged, never surfaced to the caller.
type Service struct {
	engine   *engine.Engine
	store    Store
	activity ActivityStore
	hub      *websocket.Hub
	logger   *zap.Logger
}

func NewService(eng *engine.Engine, store Store, activity ActivityStore, hub *websocket.Hub, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:   eng,
		store:    store,
		activity: activity,
		hub:      hub,
		logger:   logger,
	}
}

// Bootstrap loads the stored snapshot into the engine.
func (s *Service) Bootstrap(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.engine.Load(*snap)
	s.logger.Info("fleet snapshot loaded",
		zap.Int("vehicles", len(snap.Vehicles)),
		zap.Int("drivers", len(snap.Drivers)),
		zap.Int("trips", len(snap.Trips)))
	return nil
}

// ========== Reads ==========

func (s *Service) Vehicles() []fleet.Vehicle                      { return s.engine.Vehicles() }
func (s *Service) Vehicle(id string) (*fleet.Vehicle, error)      { return s.engine.Vehicle(id) }
func (s *Service) Drivers() []fleet.Driver                        { return s.engine.Drivers() }
func (s *Service) Driver(id string) (*fleet.Driver, error)        { return s.engine.Driver(id) }
func (s *Service) Trips() []fleet.Trip                            { return s.engine.Trips() }
func (s *Service) Trip(id string) (*fleet.Trip, error)            { return s.engine.Trip(id) }
func (s *Service) MaintenanceRecords() []fleet.MaintenanceRecord  { return s.engine.MaintenanceRecords() }
func (s *Service) FuelLogs() []fleet.FuelLog                      { return s.engine.FuelLogs() }
func (s *Service) Expenses() []fleet.Expense                      { return s.engine.Expenses() }
func (s *Service) Incidents() []fleet.Incident                    { return s.engine.Incidents() }
func (s *Service) AvailableVehicles() []fleet.Vehicle             { return s.engine.AvailableVehicles() }
func (s *Service) AvailableDrivers(t fleet.VehicleType) []fleet.Driver {
	return s.engine.AvailableDrivers(t)
}

// RecentActivity returns the newest audit entries.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]fleet.Activity, error) {
	return s.activity.Recent(ctx, limit)
}

// ========== Internals ==========

func newActivityID() string {
	return "act_" + strings.ToLower(ulid.Make().String())
}

// persist logs a storage failure without failing the command.
func (s *Service) persist(op string, err error) {
	if err != nil {
		s.logger.Error("durability write failed", zap.String("op", op), zap.Error(err))
	}
}

// record appends an audit entry and streams it to connected dashboards.
func (s *Service) record(ctx context.Context, kind, color, message string) {
	entry := &fleet.Activity{
		ID:      newActivityID(),
		Type:    kind,
		Message: message,
		Time:    time.Now(),
		Color:   color,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append activity", zap.Error(err))
	}
	if s.hub != nil {
		s.hub.BroadcastActivity(entry)
	}
}

// pushAlerts recomputes the alert feed and streams it.
func (s *Service) pushAlerts() {
	if s.hub != nil {
		s.hub.BroadcastAlerts(s.engine.SystemAlerts())
	}
}
