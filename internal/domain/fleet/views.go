package fleet

// AlertSeverity ranks dashboard alerts. Critical sorts before warning,
// warning before info.
type AlertSeverity string

const (
	AlertCritical AlertSeverity = "critical"
	AlertWarning  AlertSeverity = "warning"
	AlertInfo     AlertSeverity = "info"
)

// SeverityRank returns the sort rank for s: critical(0) < warning(1) < info(2).
func SeverityRank(s AlertSeverity) int {
	switch s {
	case AlertCritical:
		return 0
	case AlertWarning:
		return 1
	default:
		return 2
	}
}

// DispatchRecommendation is the smart-dispatch result. Either field may be
// nil, signalling that no eligible vehicle or driver was found.
type DispatchRecommendation struct {
	Vehicle *Vehicle `json:"vehicle"`
	Driver  *Driver  `json:"driver"`
}

// MaintenanceAlert is one predictive-maintenance finding for a vehicle.
type MaintenanceAlert struct {
	Type      string        `json:"type"` // "mileage", "time" or "no_history"
	Severity  AlertSeverity `json:"severity"`
	Reason    string        `json:"reason"`
	KmSince   *int          `json:"km_since,omitempty"`
	DaysSince *int          `json:"days_since,omitempty"`
}

// MaintenanceForecast groups a vehicle with its predictive alerts. Vehicles
// with no triggered condition never appear in a forecast list.
type MaintenanceForecast struct {
	Vehicle Vehicle            `json:"vehicle"`
	Alerts  []MaintenanceAlert `json:"alerts"`
}

// CostBreakdown is a vehicle's operating cost split.
type CostBreakdown struct {
	FuelCost        float64 `json:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	Total           float64 `json:"total"`
}

// FinancialRisk flags a financially underperforming vehicle.
type FinancialRisk struct {
	Vehicle         Vehicle  `json:"vehicle"`
	FuelCost        float64  `json:"fuel_cost"`
	MaintenanceCost float64  `json:"maintenance_cost"`
	TotalCost       float64  `json:"total_cost"`
	Revenue         float64  `json:"revenue"`
	ROI             float64  `json:"roi"`
	Risks           []string `json:"risks"`
}

// SystemAlert is one entry in the unified dashboard alert feed.
type SystemAlert struct {
	ID        string        `json:"id"`
	Category  string        `json:"category"` // "incident", "maintenance", "driver", "trip"
	Severity  AlertSeverity `json:"severity"`
	Title     string        `json:"title"`
	Detail    string        `json:"detail"`
	VehicleID string        `json:"vehicle_id,omitempty"`
	DriverID  string        `json:"driver_id,omitempty"`
	TripID    string        `json:"trip_id,omitempty"`
}

// DriverTripStats summarises a driver's trip history.
type DriverTripStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completion_rate"` // percent, rounded
}

// FleetSummary carries the dashboard KPI counts.
type FleetSummary struct {
	Vehicles      int `json:"vehicles"`
	Available     int `json:"available"`
	OnTrip        int `json:"on_trip"`
	InShop        int `json:"in_shop"`
	OutOfService  int `json:"out_of_service"`
	Drivers       int `json:"drivers"`
	OnDuty        int `json:"on_duty"`
	ActiveTrips   int `json:"active_trips"` // Draft or Dispatched
	OpenIncidents int `json:"open_incidents"`
}
