package fleet

import "time"

type VehicleType string
type VehicleStatus string
type LicenseStatus string
type DutyStatus string
type TripStatus string
type MaintenanceStatus string
type IncidentSeverity string
type IncidentStatus string

const (
	VehicleTypeTruck VehicleType = "Truck"
	VehicleTypeVan   VehicleType = "Van"
	VehicleTypeBike  VehicleType = "Bike"

	VehicleAvailable    VehicleStatus = "Available"
	VehicleOnTrip       VehicleStatus = "On Trip"
	VehicleInShop       VehicleStatus = "In Shop"
	VehicleOutOfService VehicleStatus = "Out of Service"

	LicenseValid    LicenseStatus = "Valid"
	LicenseExpiring LicenseStatus = "Expiring"
	LicenseExpired  LicenseStatus = "Expired"

	DutyOff       DutyStatus = "Off Duty"
	DutyOn        DutyStatus = "On Duty"
	DutySuspended DutyStatus = "Suspended"

	TripDraft      TripStatus = "Draft"
	TripDispatched TripStatus = "Dispatched"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"

	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"

	SeverityMinor    IncidentSeverity = "Minor"
	SeverityMajor    IncidentSeverity = "Major"
	SeverityCritical IncidentSeverity = "Critical"

	IncidentOpen   IncidentStatus = "Open"
	IncidentClosed IncidentStatus = "Closed"
)

// IsValidVehicleType reports whether t is a known vehicle type.
func IsValidVehicleType(t VehicleType) bool {
	switch t {
	case VehicleTypeTruck, VehicleTypeVan, VehicleTypeBike:
		return true
	}
	return false
}

// IsValidIncidentSeverity reports whether s is a known incident severity.
func IsValidIncidentSeverity(s IncidentSeverity) bool {
	switch s {
	case SeverityMinor, SeverityMajor, SeverityCritical:
		return true
	}
	return false
}

// Vehicle represents a fleet vehicle. Status is derived state, updated only
// through trip, maintenance and incident transitions.
type Vehicle struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Model           string        `json:"model"`
	LicensePlate    string        `json:"license_plate"`
	Type            VehicleType   `json:"type"`
	Region          string        `json:"region"`
	MaxCapacity     int           `json:"max_capacity"` // kg
	Odometer        int           `json:"odometer"`     // km, never decreases
	Status          VehicleStatus `json:"status"`
	AcquisitionCost float64       `json:"acquisition_cost"`
	Revenue         float64       `json:"revenue"`
}

// Driver represents a fleet driver. DutyStatus is derived state, updated only
// through trip and incident transitions.
type Driver struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	LicenseNumber   string        `json:"license_number"`
	LicenseExpiry   *time.Time    `json:"license_expiry,omitempty"`
	LicenseStatus   LicenseStatus `json:"license_status"`
	LicenseCategory []VehicleType `json:"license_category"` // ordered set
	SafetyScore     int           `json:"safety_score"`     // 0-100
	DutyStatus      DutyStatus    `json:"duty_status"`
	Phone           string        `json:"phone"`
}

// Trip represents a cargo assignment for one vehicle and one driver.
type Trip struct {
	ID           string     `json:"id"`
	VehicleID    string     `json:"vehicle_id"`
	DriverID     string     `json:"driver_id"`
	CargoWeight  int        `json:"cargo_weight"` // kg
	CargoDesc    string     `json:"cargo_desc"`
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	Status       TripStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// MaintenanceRecord represents a vehicle service visit.
type MaintenanceRecord struct {
	ID               string            `json:"id"`
	VehicleID        string            `json:"vehicle_id"`
	ServiceType      string            `json:"service_type"`
	Description      string            `json:"description"`
	Cost             float64           `json:"cost"`
	Date             time.Time         `json:"date"`
	Status           MaintenanceStatus `json:"status"`
	MileageAtService int               `json:"mileage_at_service"` // km
}

// FuelLog represents a single refuelling.
type FuelLog struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Liters    float64   `json:"liters"`
	Cost      float64   `json:"cost"`
	Date      time.Time `json:"date"`
	Station   string    `json:"station"`
}

// Expense represents a non-fuel operating expense.
type Expense struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

// Incident represents a reported vehicle incident.
type Incident struct {
	ID              string           `json:"id"`
	VehicleID       string           `json:"vehicle_id"`
	Severity        IncidentSeverity `json:"severity"`
	Description     string           `json:"description"`
	EstimatedCost   float64          `json:"estimated_cost"`
	InsuranceStatus string           `json:"insurance_status"`
	Status          IncidentStatus   `json:"status"`
	Date            time.Time        `json:"date"`
}

// Activity is an entry in the recent-activity audit feed.
type Activity struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
	Color   string    `json:"color"`
}

// Snapshot holds every entity collection, in insertion order. Persistence
// produces one at startup and the engine owns it from there.
type Snapshot struct {
	Vehicles    []Vehicle
	Drivers     []Driver
	Trips       []Trip
	Maintenance []MaintenanceRecord
	FuelLogs    []FuelLog
	Expenses    []Expense
	Incidents   []Incident
}
