package engine

import "fleetflow-service/internal/domain/fleet"

// SmartDispatch recommends the best vehicle and driver for a pending cargo
// assignment. The vehicle is the tightest fit: minimum spare capacity among
// available vehicles that still accommodate the load. The driver is the
// highest safety score among available drivers licensed for the effective
// vehicle type. Ties keep collection order. Returns nil only when neither a
// vehicle nor a driver could be found; otherwise either field may be nil on
// its own.
//
// This is a greedy two-stage heuristic: driver eligibility never feeds back
// into the vehicle choice.
func (e *Engine) SmartDispatch(cargoWeight int, typeHint fleet.VehicleType) *fleet.DispatchRecommendation {
	e.mu.Lock()
	defer e.mu.Unlock()

	var best *fleet.Vehicle
	for i := range e.vehicles {
		v := &e.vehicles[i]
		if v.Status != fleet.VehicleAvailable || v.MaxCapacity < cargoWeight {
			continue
		}
		if best == nil || v.MaxCapacity-cargoWeight < best.MaxCapacity-cargoWeight {
			best = v
		}
	}

	effectiveType := typeHint
	if effectiveType == "" && best != nil {
		effectiveType = best.Type
	}

	var bestDriver *fleet.Driver
	for i := range e.drivers {
		d := &e.drivers[i]
		if !driverAvailable(d, effectiveType) {
			continue
		}
		if bestDriver == nil || d.SafetyScore > bestDriver.SafetyScore {
			bestDriver = d
		}
	}

	if best == nil && bestDriver == nil {
		return nil
	}
	rec := &fleet.DispatchRecommendation{}
	if best != nil {
		v := *best
		rec.Vehicle = &v
	}
	if bestDriver != nil {
		d := *bestDriver
		rec.Driver = &d
	}
	return rec
}

// AvailableVehicles lists vehicles with status Available.
func (e *Engine) AvailableVehicles() []fleet.Vehicle {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []fleet.Vehicle{}
	for i := range e.vehicles {
		if e.vehicles[i].Status == fleet.VehicleAvailable {
			out = append(out, e.vehicles[i])
		}
	}
	return out
}

// AvailableDrivers lists drivers fit for assignment, optionally filtered by
// the vehicle type their license must cover.
func (e *Engine) AvailableDrivers(vehicleType fleet.VehicleType) []fleet.Driver {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []fleet.Driver{}
	for i := range e.drivers {
		if driverAvailable(&e.drivers[i], vehicleType) {
			out = append(out, e.drivers[i])
		}
	}
	return out
}

// driverAvailable reports whether d can take an assignment: off duty, license
// not expired, and licensed for vehicleType when one is known.
func driverAvailable(d *fleet.Driver, vehicleType fleet.VehicleType) bool {
	if d.DutyStatus == fleet.DutyOn || d.DutyStatus == fleet.DutySuspended {
		return false
	}
	if d.LicenseStatus == fleet.LicenseExpired {
		return false
	}
	if vehicleType != "" && !hasCategory(d.LicenseCategory, vehicleType) {
		return false
	}
	return true
}
