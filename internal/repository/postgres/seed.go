package postgres

import (
	"context"
	"fmt"
	"time"

	"fleetflow-service/internal/domain/fleet"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoData loads the demo fleet when the vehicles table is empty.
// Idempotent: a populated database is left untouched.
func SeedDemoData(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check vehicle count: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	snap := demoSnapshot()
	for i := range snap.Vehicles {
		if err := saveVehicle(ctx, tx, &snap.Vehicles[i]); err != nil {
			return false, err
		}
	}
	for i := range snap.Drivers {
		if err := saveDriver(ctx, tx, &snap.Drivers[i]); err != nil {
			return false, err
		}
	}
	for i := range snap.Trips {
		if err := saveTrip(ctx, tx, &snap.Trips[i]); err != nil {
			return false, err
		}
	}
	for i := range snap.Maintenance {
		if err := saveMaintenance(ctx, tx, &snap.Maintenance[i]); err != nil {
			return false, err
		}
	}
	for i := range snap.FuelLogs {
		f := snap.FuelLogs[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO fuel_logs (id, vehicle_id, liters, cost, date, station)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			f.ID, f.VehicleID, f.Liters, f.Cost, f.Date, f.Station); err != nil {
			return false, fmt.Errorf("failed to seed fuel log %s: %w", f.ID, err)
		}
	}
	for i := range snap.Expenses {
		x := snap.Expenses[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO expenses (id, vehicle_id, type, amount, date, notes)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			x.ID, x.VehicleID, x.Type, x.Amount, x.Date, x.Notes); err != nil {
			return false, fmt.Errorf("failed to seed expense %s: %w", x.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return true, nil
}

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func dayPtr(value string) *time.Time {
	t := day(value)
	return &t
}

func demoSnapshot() fleet.Snapshot {
	return fleet.Snapshot{
		Vehicles: []fleet.Vehicle{
			{ID: "v1", Name: "Volvo FH16", Model: "2023", LicensePlate: "KA-01-AB-1234", Type: fleet.VehicleTypeTruck, Region: "South", MaxCapacity: 25000, Odometer: 45230, Status: fleet.VehicleAvailable, AcquisitionCost: 4500000, Revenue: 1200000},
			{ID: "v2", Name: "Tata Prima", Model: "2022", LicensePlate: "MH-02-CD-5678", Type: fleet.VehicleTypeTruck, Region: "West", MaxCapacity: 18000, Odometer: 67890, Status: fleet.VehicleOnTrip, AcquisitionCost: 2800000, Revenue: 850000},
			{ID: "v3", Name: "Ashok Leyland 4923", Model: "2023", LicensePlate: "TN-03-EF-9012", Type: fleet.VehicleTypeTruck, Region: "South", MaxCapacity: 30000, Odometer: 32100, Status: fleet.VehicleInShop, AcquisitionCost: 3200000, Revenue: 950000},
			{ID: "v4", Name: "BharatBenz 3723R", Model: "2021", LicensePlate: "DL-04-GH-3456", Type: fleet.VehicleTypeVan, Region: "North", MaxCapacity: 22000, Odometer: 89450, Status: fleet.VehicleAvailable, AcquisitionCost: 3000000, Revenue: 1100000},
			{ID: "v5", Name: "Eicher Pro 6049", Model: "2022", LicensePlate: "GJ-05-IJ-7890", Type: fleet.VehicleTypeVan, Region: "West", MaxCapacity: 16000, Odometer: 54320, Status: fleet.VehicleOutOfService, AcquisitionCost: 2200000, Revenue: 620000},
			{ID: "v6", Name: "MAN CLA EVO", Model: "2024", LicensePlate: "RJ-06-KL-2345", Type: fleet.VehicleTypeTruck, Region: "North", MaxCapacity: 28000, Odometer: 12400, Status: fleet.VehicleAvailable, AcquisitionCost: 5200000, Revenue: 400000},
			{ID: "v7", Name: "Scania P410", Model: "2023", LicensePlate: "UP-07-MN-6789", Type: fleet.VehicleTypeTruck, Region: "East", MaxCapacity: 35000, Odometer: 28900, Status: fleet.VehicleOnTrip, AcquisitionCost: 6000000, Revenue: 1500000},
			{ID: "v8", Name: "Mercedes Actros", Model: "2024", LicensePlate: "AP-08-OP-0123", Type: fleet.VehicleTypeTruck, Region: "South", MaxCapacity: 32000, Odometer: 8750, Status: fleet.VehicleAvailable, AcquisitionCost: 7500000, Revenue: 300000},
		},
		Drivers: []fleet.Driver{
			{ID: "d1", Name: "Rajesh Kumar", LicenseNumber: "DL-2023-001", LicenseExpiry: dayPtr("2027-06-15"), LicenseStatus: fleet.LicenseValid, LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck, fleet.VehicleTypeVan}, SafetyScore: 92, DutyStatus: fleet.DutyOn, Phone: "+91 98765 43210"},
			{ID: "d2", Name: "Amit Sharma", LicenseNumber: "DL-2022-045", LicenseExpiry: dayPtr("2026-03-20"), LicenseStatus: fleet.LicenseValid, LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck, fleet.VehicleTypeVan, fleet.VehicleTypeBike}, SafetyScore: 88, DutyStatus: fleet.DutyOn, Phone: "+91 87654 32109"},
			{ID: "d3", Name: "Suresh Patel", LicenseNumber: "DL-2021-089", LicenseExpiry: dayPtr("2025-01-10"), LicenseStatus: fleet.LicenseExpired, LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeVan}, SafetyScore: 75, DutyStatus: fleet.DutyOff, Phone: "+91 76543 21098"},
			{ID: "d4", Name: "Manoj Singh", LicenseNumber: "DL-2023-112", LicenseExpiry: dayPtr("2027-09-25"), LicenseStatus: fleet.LicenseValid, LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck, fleet.VehicleTypeVan}, SafetyScore: 95, DutyStatus: fleet.DutyOff, Phone: "+91 65432 10987"},
			{ID: "d5", Name: "Vikram Reddy", LicenseNumber: "DL-2022-067", LicenseExpiry: dayPtr("2026-07-30"), LicenseStatus: fleet.LicenseValid, LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeTruck}, SafetyScore: 82, DutyStatus: fleet.DutyOn, Phone: "+91 54321 09876"},
			{ID: "d6", Name: "Deepak Verma", LicenseNumber: "DL-2020-034", LicenseExpiry: dayPtr("2025-11-05"), LicenseStatus: fleet.LicenseExpiring, LicenseCategory: []fleet.VehicleType{fleet.VehicleTypeVan, fleet.VehicleTypeBike}, SafetyScore: 68, DutyStatus: fleet.DutySuspended, Phone: "+91 43210 98765"},
		},
		Trips: []fleet.Trip{
			{ID: "t1", VehicleID: "v2", DriverID: "d1", CargoWeight: 15000, CargoDesc: "Steel Coils", Origin: "Mumbai", Destination: "Delhi", Status: fleet.TripDispatched, CreatedAt: day("2026-02-18"), DispatchedAt: dayPtr("2026-02-18")},
			{ID: "t2", VehicleID: "v7", DriverID: "d5", CargoWeight: 28000, CargoDesc: "Cement Bags", Origin: "Chennai", Destination: "Hyderabad", Status: fleet.TripDispatched, CreatedAt: day("2026-02-19"), DispatchedAt: dayPtr("2026-02-19")},
			{ID: "t3", VehicleID: "v1", DriverID: "d2", CargoWeight: 20000, CargoDesc: "Electronics", Origin: "Bangalore", Destination: "Pune", Status: fleet.TripCompleted, CreatedAt: day("2026-02-15"), DispatchedAt: dayPtr("2026-02-15"), CompletedAt: dayPtr("2026-02-17")},
			{ID: "t4", VehicleID: "v4", DriverID: "d4", CargoWeight: 12000, CargoDesc: "Textiles", Origin: "Ahmedabad", Destination: "Jaipur", Status: fleet.TripDraft, CreatedAt: day("2026-02-20")},
			{ID: "t5", VehicleID: "v6", DriverID: "d2", CargoWeight: 8000, CargoDesc: "Pharmaceuticals", Origin: "Hyderabad", Destination: "Kolkata", Status: fleet.TripCancelled, CreatedAt: day("2026-02-10")},
		},
		Maintenance: []fleet.MaintenanceRecord{
			{ID: "m1", VehicleID: "v3", ServiceType: "Engine Overhaul", Description: "Complete engine rebuild and tune-up", Cost: 85000, Date: day("2026-02-19"), Status: fleet.MaintenanceInProgress, MileageAtService: 32100},
			{ID: "m2", VehicleID: "v1", ServiceType: "Oil Change", Description: "Synthetic oil change and filter replacement", Cost: 5500, Date: day("2026-02-14"), Status: fleet.MaintenanceCompleted, MileageAtService: 44800},
			{ID: "m3", VehicleID: "v2", ServiceType: "Brake Inspection", Description: "Front and rear brake pad inspection", Cost: 12000, Date: day("2026-02-10"), Status: fleet.MaintenanceCompleted, MileageAtService: 67200},
			{ID: "m4", VehicleID: "v4", ServiceType: "Tire Rotation", Description: "Full tire rotation and alignment check", Cost: 8000, Date: day("2026-02-05"), Status: fleet.MaintenanceCompleted, MileageAtService: 89000},
			{ID: "m5", VehicleID: "v5", ServiceType: "Transmission Repair", Description: "Gearbox rebuild, vehicle out of service", Cost: 120000, Date: day("2026-01-28"), Status: fleet.MaintenanceCompleted, MileageAtService: 54000},
		},
		FuelLogs: []fleet.FuelLog{
			{ID: "f1", VehicleID: "v1", Liters: 180, Cost: 18000, Date: day("2026-02-18"), Station: "HP Petrol Pump, NH48"},
			{ID: "f2", VehicleID: "v2", Liters: 150, Cost: 15000, Date: day("2026-02-17"), Station: "IOC Fuel Station, Mumbai"},
			{ID: "f3", VehicleID: "v4", Liters: 120, Cost: 12000, Date: day("2026-02-16"), Station: "BP Fuel, Delhi"},
			{ID: "f4", VehicleID: "v7", Liters: 200, Cost: 20000, Date: day("2026-02-19"), Station: "Shell, Chennai"},
			{ID: "f5", VehicleID: "v1", Liters: 160, Cost: 16000, Date: day("2026-02-12"), Station: "Reliance Fuel, Pune"},
			{ID: "f6", VehicleID: "v6", Liters: 90, Cost: 9000, Date: day("2026-02-15"), Station: "HP Petrol, Jaipur"},
		},
		Expenses: []fleet.Expense{
			{ID: "e1", VehicleID: "v1", Type: "Toll Charges", Amount: 4500, Date: day("2026-02-18"), Notes: "NH48 toll gates"},
			{ID: "e2", VehicleID: "v2", Type: "Parking", Amount: 800, Date: day("2026-02-17"), Notes: "Overnight parking, Mumbai"},
			{ID: "e3", VehicleID: "v4", Type: "Insurance Premium", Amount: 45000, Date: day("2026-02-01"), Notes: "Annual comprehensive"},
			{ID: "e4", VehicleID: "v7", Type: "Toll Charges", Amount: 6200, Date: day("2026-02-19"), Notes: "Chennai-Hyderabad toll"},
			{ID: "e5", VehicleID: "v1", Type: "Cleaning", Amount: 1200, Date: day("2026-02-10"), Notes: "Full vehicle wash"},
		},
	}
}
