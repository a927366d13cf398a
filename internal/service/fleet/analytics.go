package fleet

import (
	"fleetflow-service/internal/domain/fleet"
)

// SmartDispatch recommends the tightest-fit vehicle and safest eligible
// driver for a cargo load.
func (s *Service) SmartDispatch(cargoWeight int, typeHint fleet.VehicleType) *fleet.DispatchRecommendation {
	return s.engine.SmartDispatch(cargoWeight, typeHint)
}

// PredictiveAlerts flags vehicles overdue for service.
func (s *Service) PredictiveAlerts() []fleet.MaintenanceForecast {
	return s.engine.PredictiveAlerts()
}

// FinancialRisks flags financially underperforming vehicles.
func (s *Service) FinancialRisks() []fleet.FinancialRisk {
	return s.engine.FinancialRisks()
}

// SystemAlerts returns the unified prioritized alert feed.
func (s *Service) SystemAlerts() []fleet.SystemAlert {
	return s.engine.SystemAlerts()
}

func (s *Service) VehicleCosts(id string) (*fleet.CostBreakdown, error) { return s.engine.VehicleCosts(id) }
func (s *Service) VehicleROI(id string) (float64, error)                { return s.engine.VehicleROI(id) }
func (s *Service) CostPerKm(id string) (float64, error)                 { return s.engine.CostPerKm(id) }

// DriverTripStats summarises a driver's trip history.
func (s *Service) DriverTripStats(id string) (*fleet.DriverTripStats, error) {
	return s.engine.DriverTripStats(id)
}

// Summary returns the dashboard KPI counts.
func (s *Service) Summary() fleet.FleetSummary {
	return s.engine.Summary()
}
