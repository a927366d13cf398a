package engine

import (
	"regexp"
	"strings"

	"fleetflow-service/internal/domain/fleet"
	xerrors "fleetflow-service/internal/pkg/errors"

	"go.uber.org/zap"
)

var platePattern = regexp.MustCompile(`^[A-Za-z0-9- ]+$`)

// TripTransition is the full effect of a trip lifecycle command. Vehicle and
// Driver are the updated side-effect entities, nil when the command did not
// touch them.
type TripTransition struct {
	Trip    fleet.Trip
	Vehicle *fleet.Vehicle
	Driver  *fleet.Driver
}

// MaintenanceResult pairs a maintenance record with the vehicle status side
// effect.
type MaintenanceResult struct {
	Record  fleet.MaintenanceRecord
	Vehicle *fleet.Vehicle
}

// IncidentResult is the compound effect of reporting an incident: the new
// incident, the frozen vehicle, and, when the vehicle had a dispatched trip,
// the cancelled trip and suspended driver.
type IncidentResult struct {
	Incident        fleet.Incident
	Vehicle         fleet.Vehicle
	CancelledTrip   *fleet.Trip
	SuspendedDriver *fleet.Driver
}

// ========== Vehicles ==========

func (e *Engine) AddVehicle(req fleet.CreateVehicleRequest) (*fleet.Vehicle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	plate, err := e.validateVehicleInput(req.Name, req.LicensePlate, "")
	if err != nil {
		return nil, err
	}
	typ := req.Type
	if typ == "" {
		typ = fleet.VehicleTypeTruck
	}
	if !fleet.IsValidVehicleType(typ) {
		return nil, xerrors.Validationf("unknown vehicle type %q", typ)
	}

	v := fleet.Vehicle{
		ID:              newID("v"),
		Name:            req.Name,
		Model:           req.Model,
		LicensePlate:    plate,
		Type:            typ,
		Region:          req.Region,
		MaxCapacity:     req.MaxCapacity,
		Odometer:        req.Odometer,
		Status:          fleet.VehicleAvailable,
		AcquisitionCost: req.AcquisitionCost,
		Revenue:         req.Revenue,
	}
	e.vehicles = append(e.vehicles, v)
	e.logger.Info("vehicle added", zap.String("vehicle_id", v.ID), zap.String("plate", v.LicensePlate))
	return &v, nil
}

func (e *Engine) UpdateVehicle(id string, req fleet.UpdateVehicleRequest) (*fleet.Vehicle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.findVehicle(id)
	if v == nil {
		return nil, xerrors.NotFoundf("vehicle %s", id)
	}
	plate, err := e.validateVehicleInput(req.Name, req.LicensePlate, id)
	if err != nil {
		return nil, err
	}
	typ := req.Type
	if typ == "" {
		typ = v.Type
	}
	if !fleet.IsValidVehicleType(typ) {
		return nil, xerrors.Validationf("unknown vehicle type %q", typ)
	}
	if req.Odometer < v.Odometer {
		return nil, xerrors.Validationf("odometer cannot decrease (current %d km, got %d km)", v.Odometer, req.Odometer)
	}

	v.Name = req.Name
	v.Model = req.Model
	v.LicensePlate = plate
	v.Type = typ
	v.Region = req.Region
	v.MaxCapacity = req.MaxCapacity
	v.Odometer = req.Odometer
	v.AcquisitionCost = req.AcquisitionCost
	v.Revenue = req.Revenue

	out := *v
	e.logger.Info("vehicle updated", zap.String("vehicle_id", id))
	return &out, nil
}

// DeleteVehicle removes the vehicle. Referencing trips and records are left
// in place, matching the cascade-orphan behaviour of the original system.
func (e *Engine) DeleteVehicle(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.vehicles {
		if e.vehicles[i].ID == id {
			e.vehicles = append(e.vehicles[:i], e.vehicles[i+1:]...)
			e.logger.Info("vehicle deleted", zap.String("vehicle_id", id))
			return nil
		}
	}
	return xerrors.NotFoundf("vehicle %s", id)
}

// ToggleVehicleOutOfService flips an out-of-service vehicle back to
// Available; any other status is forced to Out of Service.
func (e *Engine) ToggleVehicleOutOfService(id string) (*fleet.Vehicle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.findVehicle(id)
	if v == nil {
		return nil, xerrors.NotFoundf("vehicle %s", id)
	}
	if v.Status == fleet.VehicleOutOfService {
		v.Status = fleet.VehicleAvailable
	} else {
		v.Status = fleet.VehicleOutOfService
	}
	out := *v
	e.logger.Info("vehicle service toggled", zap.String("vehicle_id", id), zap.String("status", string(v.Status)))
	return &out, nil
}

// validateVehicleInput checks name/plate rules and plate uniqueness, skipping
// the vehicle identified by selfID. Returns the normalized plate.
func (e *Engine) validateVehicleInput(name, plate, selfID string) (string, error) {
	if name == "" || plate == "" {
		return "", xerrors.Validationf("name and license plate are required")
	}
	if len(name) < 3 {
		return "", xerrors.Validationf("vehicle name must be at least 3 characters")
	}
	if !platePattern.MatchString(plate) {
		return "", xerrors.Validationf("invalid license plate format %q", plate)
	}
	normalized := strings.ToUpper(plate)
	for i := range e.vehicles {
		if e.vehicles[i].ID != selfID && e.vehicles[i].LicensePlate == normalized {
			return "", xerrors.Conflictf("license plate %s already exists", normalized)
		}
	}
	return normalized, nil
}

// ========== Drivers ==========

func (e *Engine) AddDriver(req fleet.CreateDriverRequest) (*fleet.Driver, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	license, err := e.validateDriverInput(req.Name, req.LicenseNumber, "")
	if err != nil {
		return nil, err
	}
	score := 100
	if req.SafetyScore != nil {
		score = *req.SafetyScore
	}
	if score < 0 || score > 100 {
		return nil, xerrors.Validationf("safety score must be between 0 and 100")
	}
	status := req.LicenseStatus
	if status == "" {
		status = fleet.LicenseValid
	}

	d := fleet.Driver{
		ID:              newID("d"),
		Name:            req.Name,
		LicenseNumber:   license,
		LicenseExpiry:   req.LicenseExpiry,
		LicenseStatus:   status,
		LicenseCategory: normalizeCategories(req.LicenseCategory),
		SafetyScore:     score,
		DutyStatus:      fleet.DutyOff,
		Phone:           req.Phone,
	}
	e.drivers = append(e.drivers, d)
	e.logger.Info("driver added", zap.String("driver_id", d.ID), zap.String("license", d.LicenseNumber))
	return &d, nil
}

func (e *Engine) UpdateDriver(id string, req fleet.UpdateDriverRequest) (*fleet.Driver, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := e.findDriver(id)
	if d == nil {
		return nil, xerrors.NotFoundf("driver %s", id)
	}
	license, err := e.validateDriverInput(req.Name, req.LicenseNumber, id)
	if err != nil {
		return nil, err
	}
	score := d.SafetyScore
	if req.SafetyScore != nil {
		score = *req.SafetyScore
	}
	if score < 0 || score > 100 {
		return nil, xerrors.Validationf("safety score must be between 0 and 100")
	}

	d.Name = req.Name
	d.LicenseNumber = license
	d.LicenseExpiry = req.LicenseExpiry
	if req.LicenseStatus != "" {
		d.LicenseStatus = req.LicenseStatus
	}
	d.LicenseCategory = normalizeCategories(req.LicenseCategory)
	d.SafetyScore = score
	d.Phone = req.Phone

	out := *d
	e.logger.Info("driver updated", zap.String("driver_id", id))
	return &out, nil
}

// DeleteDriver removes the driver, cascade-orphan like DeleteVehicle.
func (e *Engine) DeleteDriver(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.drivers {
		if e.drivers[i].ID == id {
			e.drivers = append(e.drivers[:i], e.drivers[i+1:]...)
			e.logger.Info("driver deleted", zap.String("driver_id", id))
			return nil
		}
	}
	return xerrors.NotFoundf("driver %s", id)
}

func (e *Engine) validateDriverInput(name, license, selfID string) (string, error) {
	if name == "" || license == "" {
		return "", xerrors.Validationf("name and license number are required")
	}
	normalized := strings.ToUpper(license)
	for i := range e.drivers {
		if e.drivers[i].ID != selfID && e.drivers[i].LicenseNumber == normalized {
			return "", xerrors.Conflictf("license number %s already exists", normalized)
		}
	}
	return normalized, nil
}

// normalizeCategories dedupes while preserving order.
func normalizeCategories(cats []fleet.VehicleType) []fleet.VehicleType {
	out := make([]fleet.VehicleType, 0, len(cats))
	seen := make(map[fleet.VehicleType]bool, len(cats))
	for _, c := range cats {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// ========== Trips ==========

func (e *Engine) AddTrip(req fleet.CreateTripRequest) (*fleet.Trip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.VehicleID == "" || req.DriverID == "" || req.Origin == "" || req.Destination == "" {
		return nil, xerrors.Validationf("vehicle, driver, origin and destination are required")
	}
	v := e.findVehicle(req.VehicleID)
	if v == nil {
		return nil, xerrors.NotFoundf("vehicle %s", req.VehicleID)
	}
	d := e.findDriver(req.DriverID)
	if d == nil {
		return nil, xerrors.NotFoundf("driver %s", req.DriverID)
	}
	if req.CargoWeight > v.MaxCapacity {
		return nil, xerrors.Validationf("cargo weight %d kg exceeds vehicle capacity %d kg", req.CargoWeight, v.MaxCapacity)
	}
	if d.LicenseStatus == fleet.LicenseExpired {
		return nil, xerrors.Validationf("driver %s license is expired", d.Name)
	}
	if !hasCategory(d.LicenseCategory, v.Type) {
		return nil, xerrors.Validationf("driver %s license category does not cover vehicle type %s", d.Name, v.Type)
	}

	t := fleet.Trip{
		ID:          newID("t"),
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		CargoWeight: req.CargoWeight,
		CargoDesc:   req.CargoDesc,
		Origin:      req.Origin,
		Destination: req.Destination,
		Status:      fleet.TripDraft,
		CreatedAt:   e.now(),
	}
	e.trips = append(e.trips, t)
	e.logger.Info("trip created", zap.String("trip_id", t.ID), zap.String("vehicle_id", t.VehicleID))
	return &t, nil
}

// DispatchTrip moves a draft trip to Dispatched, puts the vehicle on trip and
// the driver on duty. One atomic transition.
func (e *Engine) DispatchTrip(id string) (*TripTransition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.findTrip(id)
	if t == nil {
		return nil, xerrors.NotFoundf("trip %s", id)
	}
	if t.Status != fleet.TripDraft {
		return nil, xerrors.InvalidStatef("trip %s is %s, only draft trips can be dispatched", id, t.Status)
	}

	now := e.now()
	t.Status = fleet.TripDispatched
	t.DispatchedAt = &now

	res := &TripTransition{Trip: *t}
	if v := e.findVehicle(t.VehicleID); v != nil {
		v.Status = fleet.VehicleOnTrip
		out := *v
		res.Vehicle = &out
	}
	if d := e.findDriver(t.DriverID); d != nil {
		d.DutyStatus = fleet.DutyOn
		out := *d
		res.Driver = &out
	}
	e.logger.Info("trip dispatched", zap.String("trip_id", id))
	return res, nil
}

// CompleteTrip finishes a dispatched trip, frees the vehicle and driver and,
// when a final odometer reading is supplied, advances the vehicle odometer.
func (e *Engine) CompleteTrip(id string, finalOdometer *int) (*TripTransition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.findTrip(id)
	if t == nil {
		return nil, xerrors.NotFoundf("trip %s", id)
	}
	if t.Status != fleet.TripDispatched {
		return nil, xerrors.InvalidStatef("trip %s is %s, only dispatched trips can be completed", id, t.Status)
	}
	v := e.findVehicle(t.VehicleID)
	if v != nil && finalOdometer != nil && *finalOdometer < v.Odometer {
		return nil, xerrors.Validationf("final odometer %d km is below current reading %d km", *finalOdometer, v.Odometer)
	}

	now := e.now()
	t.Status = fleet.TripCompleted
	t.CompletedAt = &now

	res := &TripTransition{Trip: *t}
	if v != nil {
		v.Status = fleet.VehicleAvailable
		if finalOdometer != nil {
			v.Odometer = *finalOdometer
		}
		out := *v
		res.Vehicle = &out
	}
	if d := e.findDriver(t.DriverID); d != nil {
		d.DutyStatus = fleet.DutyOff
		out := *d
		res.Driver = &out
	}
	e.logger.Info("trip completed", zap.String("trip_id", id))
	return res, nil
}

// CancelTrip cancels a draft or dispatched trip. Dispatched cancellations
// also release the vehicle and driver; draft cancellations have no side
// effects since nothing was committed.
func (e *Engine) CancelTrip(id string) (*TripTransition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.findTrip(id)
	if t == nil {
		return nil, xerrors.NotFoundf("trip %s", id)
	}
	if t.Status != fleet.TripDraft && t.Status != fleet.TripDispatched {
		return nil, xerrors.InvalidStatef("trip %s is %s and cannot be cancelled", id, t.Status)
	}

	wasDispatched := t.Status == fleet.TripDispatched
	t.Status = fleet.TripCancelled

	res := &TripTransition{Trip: *t}
	if wasDispatched {
		if v := e.findVehicle(t.VehicleID); v != nil {
			v.Status = fleet.VehicleAvailable
			out := *v
			res.Vehicle = &out
		}
		if d := e.findDriver(t.DriverID); d != nil {
			d.DutyStatus = fleet.DutyOff
			out := *d
			res.Driver = &out
		}
	}
	e.logger.Info("trip cancelled", zap.String("trip_id", id))
	return res, nil
}

func hasCategory(cats []fleet.VehicleType, t fleet.VehicleType) bool {
	for _, c := range cats {
		if c == t {
			return true
		}
	}
	return false
}

// ========== Maintenance ==========

func (e *Engine) AddMaintenanceRecord(req fleet.CreateMaintenanceRequest) (*MaintenanceResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.VehicleID == "" || req.ServiceType == "" {
		return nil, xerrors.Validationf("vehicle and service type are required")
	}
	if req.Cost <= 0 {
		return nil, xerrors.Validationf("cost is required")
	}
	v := e.findVehicle(req.VehicleID)
	if v == nil {
		return nil, xerrors.NotFoundf("vehicle %s", req.VehicleID)
	}

	date := e.now()
	if req.Date != nil {
		date = *req.Date
	}
	mileage := v.Odometer
	if req.MileageAtService != nil {
		mileage = *req.MileageAtService
	}

	m := fleet.MaintenanceRecord{
		ID:               newID("m"),
		VehicleID:        req.VehicleID,
		ServiceType:      req.ServiceType,
		Description:      req.Description,
		Cost:             req.Cost,
		Date:             date,
		Status:           fleet.MaintenanceInProgress,
		MileageAtService: mileage,
	}
	e.maintenance = append(e.maintenance, m)
	v.Status = fleet.VehicleInShop
	out := *v
	e.logger.Info("maintenance opened", zap.String("record_id", m.ID), zap.String("vehicle_id", v.ID))
	return &MaintenanceResult{Record: m, Vehicle: &out}, nil
}

// CompleteMaintenanceRecord closes the record and releases the vehicle. No
// check is made for other open records against the same vehicle; the last
// completion wins, as in the original system.
func (e *Engine) CompleteMaintenanceRecord(id string) (*MaintenanceResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var rec *fleet.MaintenanceRecord
	for i := range e.maintenance {
		if e.maintenance[i].ID == id {
			rec = &e.maintenance[i]
			break
		}
	}
	if rec == nil {
		return nil, xerrors.NotFoundf("maintenance record %s", id)
	}
	if rec.Status != fleet.MaintenanceInProgress {
		return nil, xerrors.InvalidStatef("maintenance record %s is already %s", id, rec.Status)
	}

	rec.Status = fleet.MaintenanceCompleted
	res := &MaintenanceResult{Record: *rec}
	if v := e.findVehicle(rec.VehicleID); v != nil {
		v.Status = fleet.VehicleAvailable
		out := *v
		res.Vehicle = &out
	}
	e.logger.Info("maintenance completed", zap.String("record_id", id))
	return res, nil
}

// ========== Fuel logs and expenses ==========

func (e *Engine) AddFuelLog(req fleet.CreateFuelLogRequest) (*fleet.FuelLog, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.VehicleID == "" {
		return nil, xerrors.Validationf("vehicle is required")
	}
	if e.findVehicle(req.VehicleID) == nil {
		return nil, xerrors.NotFoundf("vehicle %s", req.VehicleID)
	}

	date := e.now()
	if req.Date != nil {
		date = *req.Date
	}
	f := fleet.FuelLog{
		ID:        newID("f"),
		VehicleID: req.VehicleID,
		Liters:    req.Liters,
		Cost:      req.Cost,
		Date:      date,
		Station:   req.Station,
	}
	e.fuelLogs = append(e.fuelLogs, f)
	return &f, nil
}

func (e *Engine) AddExpense(req fleet.CreateExpenseRequest) (*fleet.Expense, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.VehicleID == "" {
		return nil, xerrors.Validationf("vehicle is required")
	}
	if e.findVehicle(req.VehicleID) == nil {
		return nil, xerrors.NotFoundf("vehicle %s", req.VehicleID)
	}

	date := e.now()
	if req.Date != nil {
		date = *req.Date
	}
	x := fleet.Expense{
		ID:        newID("e"),
		VehicleID: req.VehicleID,
		Type:      req.Type,
		Amount:    req.Amount,
		Date:      date,
		Notes:     req.Notes,
	}
	e.expenses = append(e.expenses, x)
	return &x, nil
}

// ========== Incidents ==========

// ReportIncident opens an incident, freezes the vehicle, cancels the
// vehicle's dispatched trip if one exists and suspends that trip's driver.
// All of it is one transition.
func (e *Engine) ReportIncident(req fleet.ReportIncidentRequest) (*IncidentResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.VehicleID == "" {
		return nil, xerrors.Validationf("vehicle is required")
	}
	if !fleet.IsValidIncidentSeverity(req.Severity) {
		return nil, xerrors.Validationf("unknown incident severity %q", req.Severity)
	}
	v := e.findVehicle(req.VehicleID)
	if v == nil {
		return nil, xerrors.NotFoundf("vehicle %s", req.VehicleID)
	}

	inc := fleet.Incident{
		ID:              newID("inc"),
		VehicleID:       req.VehicleID,
		Severity:        req.Severity,
		Description:     req.Description,
		EstimatedCost:   req.EstimatedCost,
		InsuranceStatus: req.InsuranceStatus,
		Status:          fleet.IncidentOpen,
		Date:            e.now(),
	}
	e.incidents = append(e.incidents, inc)

	v.Status = fleet.VehicleOutOfService
	res := &IncidentResult{Incident: inc, Vehicle: *v}

	var active *fleet.Trip
	for i := range e.trips {
		if e.trips[i].VehicleID == req.VehicleID && e.trips[i].Status == fleet.TripDispatched {
			active = &e.trips[i]
			break
		}
	}
	if active != nil {
		active.Status = fleet.TripCancelled
		trip := *active
		res.CancelledTrip = &trip
		if d := e.findDriver(active.DriverID); d != nil {
			d.DutyStatus = fleet.DutySuspended
			out := *d
			res.SuspendedDriver = &out
		}
	}
	e.logger.Warn("incident reported",
		zap.String("incident_id", inc.ID),
		zap.String("vehicle_id", req.VehicleID),
		zap.String("severity", string(req.Severity)),
	)
	return res, nil
}
