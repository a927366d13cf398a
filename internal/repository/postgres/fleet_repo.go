package postgres

import (
	"context"
	"fmt"

	"fleetflow-service/internal/domain/fleet"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// FleetRepository persists fleet entities. The in-memory engine owns the
// authoritative state; this repository mirrors every accepted command so a
// restart can reload the same snapshot.
type FleetRepository struct {
	db *pgxpool.Pool
}

func NewFleetRepository(db *pgxpool.Pool) *FleetRepository {
	return &FleetRepository{db: db}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Load reads the full fleet snapshot in insertion order.
func (r *FleetRepository) Load(ctx context.Context) (*fleet.Snapshot, error) {
	snap := &fleet.Snapshot{}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, model, license_plate, type, region, max_capacity, odometer, status, acquisition_cost, revenue
		FROM vehicles ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	for rows.Next() {
		var v fleet.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Model, &v.LicensePlate, &v.Type, &v.Region,
			&v.MaxCapacity, &v.Odometer, &v.Status, &v.AcquisitionCost, &v.Revenue); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		snap.Vehicles = append(snap.Vehicles, v)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, name, license_number, license_expiry, license_status, license_category, safety_score, duty_status, phone
		FROM drivers ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("failed to load drivers: %w", err)
	}
	for rows.Next() {
		var d fleet.Driver
		var categories pq.StringArray
		if err := rows.Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.LicenseExpiry, &d.LicenseStatus,
			&categories, &d.SafetyScore, &d.DutyStatus, &d.Phone); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		for _, c := range categories {
			d.LicenseCategory = append(d.LicenseCategory, fleet.VehicleType(c))
		}
		snap.Drivers = append(snap.Drivers, d)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, vehicle_id, driver_id, cargo_weight, cargo_desc, origin, destination, status, created_at, dispatched_at, completed_at
		FROM trips ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	for rows.Next() {
		var t fleet.Trip
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.DriverID, &t.CargoWeight, &t.CargoDesc,
			&t.Origin, &t.Destination, &t.Status, &t.CreatedAt, &t.DispatchedAt, &t.CompletedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		snap.Trips = append(snap.Trips, t)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, vehicle_id, service_type, description, cost, date, status, mileage_at_service
		FROM maintenance ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("failed to load maintenance records: %w", err)
	}
	for rows.Next() {
		var m fleet.MaintenanceRecord
		if err := rows.Scan(&m.ID, &m.VehicleID, &m.ServiceType, &m.Description, &m.Cost,
			&m.Date, &m.Status, &m.MileageAtService); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
		}
		snap.Maintenance = append(snap.Maintenance, m)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, vehicle_id, liters, cost, date, station FROM fuel_logs ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("failed to load fuel logs: %w", err)
	}
	for rows.Next() {
		var f fleet.FuelLog
		if err := rows.Scan(&f.ID, &f.VehicleID, &f.Liters, &f.Cost, &f.Date, &f.Station); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan fuel log: %w", err)
		}
		snap.FuelLogs = append(snap.FuelLogs, f)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, vehicle_id, type, amount, date, notes FROM expenses ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	for rows.Next() {
		var x fleet.Expense
		if err := rows.Scan(&x.ID, &x.VehicleID, &x.Type, &x.Amount, &x.Date, &x.Notes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		snap.Expenses = append(snap.Expenses, x)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, vehicle_id, severity, description, estimated_cost, insurance_status, status, date
		FROM incidents ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("failed to load incidents: %w", err)
	}
	for rows.Next() {
		var inc fleet.Incident
		if err := rows.Scan(&inc.ID, &inc.VehicleID, &inc.Severity, &inc.Description,
			&inc.EstimatedCost, &inc.InsuranceStatus, &inc.Status, &inc.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		snap.Incidents = append(snap.Incidents, inc)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return snap, nil
}

// SaveVehicle inserts or updates a vehicle.
func (r *FleetRepository) SaveVehicle(ctx context.Context, v *fleet.Vehicle) error {
	return saveVehicle(ctx, r.db, v)
}

func saveVehicle(ctx context.Context, q querier, v *fleet.Vehicle) error {
	_, err := q.Exec(ctx, `
		INSERT INTO vehicles (id, name, model, license_plate, type, region, max_capacity, odometer, status, acquisition_cost, revenue)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, model = EXCLUDED.model, license_plate = EXCLUDED.license_plate,
			type = EXCLUDED.type, region = EXCLUDED.region, max_capacity = EXCLUDED.max_capacity,
			odometer = EXCLUDED.odometer, status = EXCLUDED.status,
			acquisition_cost = EXCLUDED.acquisition_cost, revenue = EXCLUDED.revenue`,
		v.ID, v.Name, v.Model, v.LicensePlate, v.Type, v.Region, v.MaxCapacity,
		v.Odometer, v.Status, v.AcquisitionCost, v.Revenue)
	if err != nil {
		return fmt.Errorf("failed to save vehicle %s: %w", v.ID, err)
	}
	return nil
}

// SaveDriver inserts or updates a driver.
func (r *FleetRepository) SaveDriver(ctx context.Context, d *fleet.Driver) error {
	return saveDriver(ctx, r.db, d)
}

func saveDriver(ctx context.Context, q querier, d *fleet.Driver) error {
	categories := make(pq.StringArray, 0, len(d.LicenseCategory))
	for _, c := range d.LicenseCategory {
		categories = append(categories, string(c))
	}

	_, err := q.Exec(ctx, `
		INSERT INTO drivers (id, name, license_number, license_expiry, license_status, license_category, safety_score, duty_status, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, license_number = EXCLUDED.license_number,
			license_expiry = EXCLUDED.license_expiry, license_status = EXCLUDED.license_status,
			license_category = EXCLUDED.license_category, safety_score = EXCLUDED.safety_score,
			duty_status = EXCLUDED.duty_status, phone = EXCLUDED.phone`,
		d.ID, d.Name, d.LicenseNumber, d.LicenseExpiry, d.LicenseStatus, categories,
		d.SafetyScore, d.DutyStatus, d.Phone)
	if err != nil {
		return fmt.Errorf("failed to save driver %s: %w", d.ID, err)
	}
	return nil
}

// SaveTrip inserts or updates a trip.
func (r *FleetRepository) SaveTrip(ctx context.Context, t *fleet.Trip) error {
	return saveTrip(ctx, r.db, t)
}

func saveTrip(ctx context.Context, q querier, t *fleet.Trip) error {
	_, err := q.Exec(ctx, `
		INSERT INTO trips (id, vehicle_id, driver_id, cargo_weight, cargo_desc, origin, destination, status, created_at, dispatched_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			vehicle_id = EXCLUDED.vehicle_id, driver_id = EXCLUDED.driver_id,
			cargo_weight = EXCLUDED.cargo_weight, cargo_desc = EXCLUDED.cargo_desc,
			origin = EXCLUDED.origin, destination = EXCLUDED.destination,
			status = EXCLUDED.status, created_at = EXCLUDED.created_at,
			dispatched_at = EXCLUDED.dispatched_at, completed_at = EXCLUDED.completed_at`,
		t.ID, t.VehicleID, t.DriverID, t.CargoWeight, t.CargoDesc, t.Origin, t.Destination,
		t.Status, t.CreatedAt, t.DispatchedAt, t.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to save trip %s: %w", t.ID, err)
	}
	return nil
}

// SaveMaintenance inserts or updates a maintenance record.
func (r *FleetRepository) SaveMaintenance(ctx context.Context, m *fleet.MaintenanceRecord) error {
	return saveMaintenance(ctx, r.db, m)
}

func saveMaintenance(ctx context.Context, q querier, m *fleet.MaintenanceRecord) error {
	_, err := q.Exec(ctx, `
		INSERT INTO maintenance (id, vehicle_id, service_type, description, cost, date, status, mileage_at_service)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			vehicle_id = EXCLUDED.vehicle_id, service_type = EXCLUDED.service_type,
			description = EXCLUDED.description, cost = EXCLUDED.cost, date = EXCLUDED.date,
			status = EXCLUDED.status, mileage_at_service = EXCLUDED.mileage_at_service`,
		m.ID, m.VehicleID, m.ServiceType, m.Description, m.Cost, m.Date, m.Status, m.MileageAtService)
	if err != nil {
		return fmt.Errorf("failed to save maintenance record %s: %w", m.ID, err)
	}
	return nil
}

// SaveFuelLog inserts a refuelling entry.
func (r *FleetRepository) SaveFuelLog(ctx context.Context, f *fleet.FuelLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO fuel_logs (id, vehicle_id, liters, cost, date, station)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		f.ID, f.VehicleID, f.Liters, f.Cost, f.Date, f.Station)
	if err != nil {
		return fmt.Errorf("failed to save fuel log %s: %w", f.ID, err)
	}
	return nil
}

// SaveExpense inserts an expense entry.
func (r *FleetRepository) SaveExpense(ctx context.Context, x *fleet.Expense) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO expenses (id, vehicle_id, type, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		x.ID, x.VehicleID, x.Type, x.Amount, x.Date, x.Notes)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", x.ID, err)
	}
	return nil
}

func saveIncident(ctx context.Context, q querier, inc *fleet.Incident) error {
	_, err := q.Exec(ctx, `
		INSERT INTO incidents (id, vehicle_id, severity, description, estimated_cost, insurance_status, status, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			severity = EXCLUDED.severity, description = EXCLUDED.description,
			estimated_cost = EXCLUDED.estimated_cost, insurance_status = EXCLUDED.insurance_status,
			status = EXCLUDED.status, date = EXCLUDED.date`,
		inc.ID, inc.VehicleID, inc.Severity, inc.Description, inc.EstimatedCost,
		inc.InsuranceStatus, inc.Status, inc.Date)
	if err != nil {
		return fmt.Errorf("failed to save incident %s: %w", inc.ID, err)
	}
	return nil
}

// DeleteVehicle removes a vehicle row. Related history rows stay behind,
// matching the engine's delete semantics.
func (r *FleetRepository) DeleteVehicle(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", id, err)
	}
	return nil
}

// DeleteDriver removes a driver row.
func (r *FleetRepository) DeleteDriver(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete driver %s: %w", id, err)
	}
	return nil
}

// SaveTripTransition persists a trip state change plus the vehicle and
// driver it touched, atomically. Vehicle and driver may be nil when the
// transition left them untouched.
func (r *FleetRepository) SaveTripTransition(ctx context.Context, t *fleet.Trip, v *fleet.Vehicle, d *fleet.Driver) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveTrip(ctx, tx, t); err != nil {
		return err
	}
	if v != nil {
		if err := saveVehicle(ctx, tx, v); err != nil {
			return err
		}
	}
	if d != nil {
		if err := saveDriver(ctx, tx, d); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// SaveMaintenanceResult persists a maintenance record together with the
// vehicle status change it caused.
func (r *FleetRepository) SaveMaintenanceResult(ctx context.Context, m *fleet.MaintenanceRecord, v *fleet.Vehicle) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveMaintenance(ctx, tx, m); err != nil {
		return err
	}
	if v != nil {
		if err := saveVehicle(ctx, tx, v); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// SaveIncidentResult persists an incident and every entity its fallout
// touched: the grounded vehicle, a cancelled trip and a suspended driver.
func (r *FleetRepository) SaveIncidentResult(ctx context.Context, inc *fleet.Incident, v *fleet.Vehicle, t *fleet.Trip, d *fleet.Driver) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveIncident(ctx, tx, inc); err != nil {
		return err
	}
	if v != nil {
		if err := saveVehicle(ctx, tx, v); err != nil {
			return err
		}
	}
	if t != nil {
		if err := saveTrip(ctx, tx, t); err != nil {
			return err
		}
	}
	if d != nil {
		if err := saveDriver(ctx, tx, d); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
