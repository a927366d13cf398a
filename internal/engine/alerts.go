package engine

import (
	"fmt"
	"sort"
	"strings"

	"fleetflow-service/internal/domain/fleet"
)

// License expiry and stale-draft windows for the dashboard feed.
const (
	licenseWarnDays     = 60
	licenseCriticalDays = 14
	draftWarnDays       = 2
	draftCriticalDays   = 5
)

// SystemAlerts merges four independent alert sources into one prioritized
// feed: open incidents, predictive maintenance, expiring driver licenses and
// stale draft trips. Critical entries sort first, then warning, then info;
// ordering within a rank is stable.
func (e *Engine) SystemAlerts() []fleet.SystemAlert {
	alerts := []fleet.SystemAlert{}
	alerts = append(alerts, e.incidentAlerts()...)
	alerts = append(alerts, e.maintenanceAlerts()...)
	alerts = append(alerts, e.licenseAlerts()...)
	alerts = append(alerts, e.staleDraftAlerts()...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return fleet.SeverityRank(alerts[i].Severity) < fleet.SeverityRank(alerts[j].Severity)
	})
	return alerts
}

func (e *Engine) incidentAlerts() []fleet.SystemAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []fleet.SystemAlert{}
	for i := range e.incidents {
		inc := e.incidents[i]
		if inc.Status != fleet.IncidentOpen {
			continue
		}
		sev := fleet.AlertWarning
		if inc.Severity == fleet.SeverityMajor || inc.Severity == fleet.SeverityCritical {
			sev = fleet.AlertCritical
		}
		name := "Vehicle"
		if v := e.findVehicle(inc.VehicleID); v != nil {
			name = v.Name
		}
		out = append(out, fleet.SystemAlert{
			ID:        "inc-" + inc.ID,
			Category:  "incident",
			Severity:  sev,
			Title:     fmt.Sprintf("INCIDENT: %s", name),
			Detail:    fmt.Sprintf("%s severity · %s · est. cost ₹%.0f", inc.Severity, inc.Description, inc.EstimatedCost),
			VehicleID: inc.VehicleID,
		})
	}
	return out
}

func (e *Engine) maintenanceAlerts() []fleet.SystemAlert {
	out := []fleet.SystemAlert{}
	for _, forecast := range e.PredictiveAlerts() {
		top := forecast.Alerts[0]
		for _, a := range forecast.Alerts {
			if a.Severity == fleet.AlertCritical {
				top = a
				break
			}
		}
		out = append(out, fleet.SystemAlert{
			ID:        "maint-" + forecast.Vehicle.ID,
			Category:  "maintenance",
			Severity:  top.Severity,
			Title:     fmt.Sprintf("%s — Service Overdue", forecast.Vehicle.Name),
			Detail:    top.Reason,
			VehicleID: forecast.Vehicle.ID,
		})
	}
	return out
}

func (e *Engine) licenseAlerts() []fleet.SystemAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.now()
	out := []fleet.SystemAlert{}
	for i := range e.drivers {
		d := e.drivers[i]
		if d.LicenseExpiry == nil || d.LicenseStatus == fleet.LicenseExpired {
			continue
		}
		daysLeft := daysBetween(today, *d.LicenseExpiry)
		if daysLeft > licenseWarnDays {
			continue
		}
		sev := fleet.AlertWarning
		if daysLeft <= licenseCriticalDays {
			sev = fleet.AlertCritical
		}
		detail := fmt.Sprintf("expires in %d days (%s)", daysLeft, d.LicenseExpiry.Format("2006-01-02"))
		if daysLeft <= 0 {
			detail = "license has already expired"
		}
		out = append(out, fleet.SystemAlert{
			ID:       "license-" + d.ID,
			Category: "driver",
			Severity: sev,
			Title:    fmt.Sprintf("%s — License Expiring", d.Name),
			Detail:   detail,
			DriverID: d.ID,
		})
	}
	return out
}

func (e *Engine) staleDraftAlerts() []fleet.SystemAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.now()
	out := []fleet.SystemAlert{}
	for i := range e.trips {
		t := e.trips[i]
		if t.Status != fleet.TripDraft {
			continue
		}
		age := daysBetween(t.CreatedAt, today)
		if age < draftWarnDays {
			continue
		}
		sev := fleet.AlertInfo
		if age >= draftCriticalDays {
			sev = fleet.AlertCritical
		}
		cargo := t.CargoDesc
		if cargo == "" {
			cargo = "Cargo"
		}
		out = append(out, fleet.SystemAlert{
			ID:       "trip-" + t.ID,
			Category: "trip",
			Severity: sev,
			Title:    fmt.Sprintf("Trip #%s — Pending Dispatch", strings.ToUpper(t.ID)),
			Detail:   fmt.Sprintf("%s · %s → %s · waiting %d days", cargo, t.Origin, t.Destination, age),
			TripID:   t.ID,
		})
	}
	return out
}
