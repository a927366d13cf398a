package engine

import (
	"fmt"

	"fleetflow-service/internal/domain/fleet"
)

// Predictive-maintenance thresholds. Critical kicks in at 1.5x either one.
const (
	mileageThresholdKm = 10000
	serviceDayLimit    = 90
)

// PredictiveAlerts flags vehicles overdue for service by mileage or elapsed
// time since their most recent completed maintenance. Vehicles that are out
// of service are skipped, and vehicles with nothing to flag are excluded
// from the result entirely. A vehicle can carry both a mileage and a time
// alert at once.
func (e *Engine) PredictiveAlerts() []fleet.MaintenanceForecast {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.now()
	out := []fleet.MaintenanceForecast{}

	for i := range e.vehicles {
		v := e.vehicles[i]
		if v.Status == fleet.VehicleOutOfService {
			continue
		}

		last := e.lastCompletedService(v.ID)
		var alerts []fleet.MaintenanceAlert

		if last == nil {
			alerts = append(alerts, fleet.MaintenanceAlert{
				Type:     "no_history",
				Severity: fleet.AlertWarning,
				Reason:   "no service history found, schedule initial inspection",
			})
		} else {
			kmSince := v.Odometer - last.MileageAtService
			daysSince := daysBetween(last.Date, today)

			if kmSince >= mileageThresholdKm {
				sev := fleet.AlertWarning
				if kmSince >= mileageThresholdKm*3/2 {
					sev = fleet.AlertCritical
				}
				km := kmSince
				alerts = append(alerts, fleet.MaintenanceAlert{
					Type:     "mileage",
					Severity: sev,
					Reason:   fmt.Sprintf("%d km since last service (threshold: %d km)", kmSince, mileageThresholdKm),
					KmSince:  &km,
				})
			}
			if daysSince >= serviceDayLimit {
				sev := fleet.AlertWarning
				if daysSince >= serviceDayLimit*3/2 {
					sev = fleet.AlertCritical
				}
				days := daysSince
				alerts = append(alerts, fleet.MaintenanceAlert{
					Type:      "time",
					Severity:  sev,
					Reason:    fmt.Sprintf("%d days since last service (threshold: %d days)", daysSince, serviceDayLimit),
					DaysSince: &days,
				})
			}
		}

		if len(alerts) > 0 {
			out = append(out, fleet.MaintenanceForecast{Vehicle: v, Alerts: alerts})
		}
	}
	return out
}

// lastCompletedService returns the most recent completed maintenance record
// for the vehicle, by service date. Caller holds e.mu.
func (e *Engine) lastCompletedService(vehicleID string) *fleet.MaintenanceRecord {
	var last *fleet.MaintenanceRecord
	for i := range e.maintenance {
		m := &e.maintenance[i]
		if m.VehicleID != vehicleID || m.Status != fleet.MaintenanceCompleted {
			continue
		}
		if last == nil || m.Date.After(last.Date) {
			last = m
		}
	}
	return last
}
