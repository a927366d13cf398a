package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Every table carries a pos column so snapshots load back in insertion
// order; dispatch tie-breaking depends on it.
const schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	name TEXT NOT NULL,
	model TEXT NOT NULL DEFAULT '',
	license_plate TEXT UNIQUE NOT NULL,
	type TEXT NOT NULL,
	region TEXT NOT NULL DEFAULT '',
	max_capacity INTEGER NOT NULL DEFAULT 0,
	odometer INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	acquisition_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	revenue DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS drivers (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	name TEXT NOT NULL,
	license_number TEXT UNIQUE NOT NULL,
	license_expiry TIMESTAMPTZ,
	license_status TEXT NOT NULL,
	license_category TEXT[] NOT NULL DEFAULT '{}',
	safety_score INTEGER NOT NULL DEFAULT 100,
	duty_status TEXT NOT NULL,
	phone TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS trips (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	vehicle_id TEXT NOT NULL,
	driver_id TEXT NOT NULL,
	cargo_weight INTEGER NOT NULL DEFAULT 0,
	cargo_desc TEXT NOT NULL DEFAULT '',
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	dispatched_at TIMESTAMPTZ,
	completed_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS maintenance (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	vehicle_id TEXT NOT NULL,
	service_type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	date TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	mileage_at_service INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS fuel_logs (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	vehicle_id TEXT NOT NULL,
	liters DOUBLE PRECISION NOT NULL DEFAULT 0,
	cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	date TIMESTAMPTZ NOT NULL,
	station TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS expenses (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	vehicle_id TEXT NOT NULL,
	type TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	date TIMESTAMPTZ NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS incidents (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	vehicle_id TEXT NOT NULL,
	severity TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	estimated_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	insurance_status TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS recent_activity (
	id TEXT PRIMARY KEY,
	pos BIGSERIAL,
	type TEXT NOT NULL,
	message TEXT NOT NULL,
	time TIMESTAMPTZ NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);

`

// EnsureSchema creates the fleet tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
