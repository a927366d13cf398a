package fleet

import "time"

// CreateVehicleRequest for adding a vehicle to the fleet
type CreateVehicleRequest struct {
	Name            string      `json:"name"`
	Model           string      `json:"model"`
	LicensePlate    string      `json:"license_plate"`
	Type            VehicleType `json:"type"`
	Region          string      `json:"region"`
	MaxCapacity     int         `json:"max_capacity"`
	Odometer        int         `json:"odometer"`
	AcquisitionCost float64     `json:"acquisition_cost"`
	Revenue         float64     `json:"revenue"`
}

// UpdateVehicleRequest for updating vehicle details. Status is derived state
// and cannot be set here.
type UpdateVehicleRequest struct {
	Name            string      `json:"name"`
	Model           string      `json:"model"`
	LicensePlate    string      `json:"license_plate"`
	Type            VehicleType `json:"type"`
	Region          string      `json:"region"`
	MaxCapacity     int         `json:"max_capacity"`
	Odometer        int         `json:"odometer"`
	AcquisitionCost float64     `json:"acquisition_cost"`
	Revenue         float64     `json:"revenue"`
}

// CreateDriverRequest for adding a driver
type CreateDriverRequest struct {
	Name            string        `json:"name"`
	LicenseNumber   string        `json:"license_number"`
	LicenseExpiry   *time.Time    `json:"license_expiry"`
	LicenseStatus   LicenseStatus `json:"license_status"`
	LicenseCategory []VehicleType `json:"license_category"`
	SafetyScore     *int          `json:"safety_score"`
	Phone           string        `json:"phone"`
}

// UpdateDriverRequest for updating driver details. DutyStatus is derived
// state and cannot be set here.
type UpdateDriverRequest struct {
	Name            string        `json:"name"`
	LicenseNumber   string        `json:"license_number"`
	LicenseExpiry   *time.Time    `json:"license_expiry"`
	LicenseStatus   LicenseStatus `json:"license_status"`
	LicenseCategory []VehicleType `json:"license_category"`
	SafetyScore     *int          `json:"safety_score"`
	Phone           string        `json:"phone"`
}

// CreateTripRequest for creating a draft trip
type CreateTripRequest struct {
	VehicleID   string `json:"vehicle_id"`
	DriverID    string `json:"driver_id"`
	CargoWeight int    `json:"cargo_weight"`
	CargoDesc   string `json:"cargo_desc"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// CompleteTripRequest carries the optional final odometer reading.
type CompleteTripRequest struct {
	FinalOdometer *int `json:"final_odometer"`
}

// CreateMaintenanceRequest for checking a vehicle into the shop
type CreateMaintenanceRequest struct {
	VehicleID        string     `json:"vehicle_id"`
	ServiceType      string     `json:"service_type"`
	Description      string     `json:"description"`
	Cost             float64    `json:"cost"`
	Date             *time.Time `json:"date"`
	MileageAtService *int       `json:"mileage_at_service"`
}

// CreateFuelLogRequest for logging a refuelling
type CreateFuelLogRequest struct {
	VehicleID string     `json:"vehicle_id"`
	Liters    float64    `json:"liters"`
	Cost      float64    `json:"cost"`
	Date      *time.Time `json:"date"`
	Station   string     `json:"station"`
}

// CreateExpenseRequest for recording an operating expense
type CreateExpenseRequest struct {
	VehicleID string     `json:"vehicle_id"`
	Type      string     `json:"type"`
	Amount    float64    `json:"amount"`
	Date      *time.Time `json:"date"`
	Notes     string     `json:"notes"`
}

// ReportIncidentRequest for reporting a vehicle incident
type ReportIncidentRequest struct {
	VehicleID       string           `json:"vehicle_id"`
	Severity        IncidentSeverity `json:"severity"`
	Description     string           `json:"description"`
	EstimatedCost   float64          `json:"estimated_cost"`
	InsuranceStatus string           `json:"insurance_status"`
}

// DispatchQuery asks for a vehicle+driver recommendation for a pending load.
type DispatchQuery struct {
	CargoWeight int         `form:"cargo_weight"`
	VehicleType VehicleType `form:"vehicle_type"`
}
