package engine

import (
	"fmt"
	"math"

	"fleetflow-service/internal/domain/fleet"
	xerrors "fleetflow-service/internal/pkg/errors"
)

// FinancialRisks identifies vehicles that are financially underperforming.
// Every flag is evaluated independently; a vehicle may carry several.
// Vehicles with no flags are excluded from the result.
func (e *Engine) FinancialRisks() []fleet.FinancialRisk {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []fleet.FinancialRisk{}
	for i := range e.vehicles {
		v := e.vehicles[i]
		costs := e.vehicleCosts(v.ID)
		roi := roiOf(v, costs.Total)

		var risks []string
		if costs.Total > v.Revenue && v.Revenue > 0 {
			risks = append(risks, fmt.Sprintf("operating at a loss: cost ₹%.0f exceeds revenue ₹%.0f", costs.Total, v.Revenue))
		}
		if roi < 5 && v.AcquisitionCost > 0 {
			risks = append(risks, fmt.Sprintf("poor ROI: %.1f%% on ₹%.0f acquisition cost", roi, v.AcquisitionCost))
		}
		if v.Revenue > 0 && costs.MaintenanceCost/v.Revenue > 0.20 {
			pct := math.Round(costs.MaintenanceCost / v.Revenue * 100)
			risks = append(risks, fmt.Sprintf("high maintenance: service costs consume %.0f%% of generated revenue", pct))
		}

		if len(risks) > 0 {
			out = append(out, fleet.FinancialRisk{
				Vehicle:         v,
				FuelCost:        costs.FuelCost,
				MaintenanceCost: costs.MaintenanceCost,
				TotalCost:       costs.Total,
				Revenue:         v.Revenue,
				ROI:             roi,
				Risks:           risks,
			})
		}
	}
	return out
}

// VehicleCosts returns the vehicle's operating cost breakdown: fuel spend
// plus maintenance spend.
func (e *Engine) VehicleCosts(vehicleID string) (*fleet.CostBreakdown, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.findVehicle(vehicleID) == nil {
		return nil, xerrors.NotFoundf("vehicle %s", vehicleID)
	}
	costs := e.vehicleCosts(vehicleID)
	return &costs, nil
}

// VehicleROI returns return on investment as a percentage:
// (revenue - total cost) / acquisition cost * 100. Zero when the acquisition
// cost is unknown.
func (e *Engine) VehicleROI(vehicleID string) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.findVehicle(vehicleID)
	if v == nil {
		return 0, xerrors.NotFoundf("vehicle %s", vehicleID)
	}
	return roiOf(*v, e.vehicleCosts(vehicleID).Total), nil
}

// CostPerKm divides total operating cost by the current odometer reading.
// Zero for a vehicle that has not moved.
func (e *Engine) CostPerKm(vehicleID string) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.findVehicle(vehicleID)
	if v == nil {
		return 0, xerrors.NotFoundf("vehicle %s", vehicleID)
	}
	if v.Odometer == 0 {
		return 0, nil
	}
	return e.vehicleCosts(vehicleID).Total / float64(v.Odometer), nil
}

// DriverTripStats summarises a driver's trip history.
func (e *Engine) DriverTripStats(driverID string) (*fleet.DriverTripStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.findDriver(driverID) == nil {
		return nil, xerrors.NotFoundf("driver %s", driverID)
	}
	stats := fleet.DriverTripStats{}
	for i := range e.trips {
		if e.trips[i].DriverID != driverID {
			continue
		}
		stats.Total++
		if e.trips[i].Status == fleet.TripCompleted {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return &stats, nil
}

// Summary returns the dashboard KPI counts.
func (e *Engine) Summary() fleet.FleetSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := fleet.FleetSummary{Vehicles: len(e.vehicles), Drivers: len(e.drivers)}
	for i := range e.vehicles {
		switch e.vehicles[i].Status {
		case fleet.VehicleAvailable:
			s.Available++
		case fleet.VehicleOnTrip:
			s.OnTrip++
		case fleet.VehicleInShop:
			s.InShop++
		case fleet.VehicleOutOfService:
			s.OutOfService++
		}
	}
	for i := range e.drivers {
		if e.drivers[i].DutyStatus == fleet.DutyOn {
			s.OnDuty++
		}
	}
	for i := range e.trips {
		if st := e.trips[i].Status; st == fleet.TripDraft || st == fleet.TripDispatched {
			s.ActiveTrips++
		}
	}
	for i := range e.incidents {
		if e.incidents[i].Status == fleet.IncidentOpen {
			s.OpenIncidents++
		}
	}
	return s
}

// vehicleCosts sums fuel and maintenance spend. Caller holds e.mu.
func (e *Engine) vehicleCosts(vehicleID string) fleet.CostBreakdown {
	var costs fleet.CostBreakdown
	for i := range e.fuelLogs {
		if e.fuelLogs[i].VehicleID == vehicleID {
			costs.FuelCost += e.fuelLogs[i].Cost
		}
	}
	for i := range e.maintenance {
		if e.maintenance[i].VehicleID == vehicleID {
			costs.MaintenanceCost += e.maintenance[i].Cost
		}
	}
	costs.Total = costs.FuelCost + costs.MaintenanceCost
	return costs
}

func roiOf(v fleet.Vehicle, totalCost float64) float64 {
	if v.AcquisitionCost <= 0 {
		return 0
	}
	return (v.Revenue - totalCost) / v.AcquisitionCost * 100
}
