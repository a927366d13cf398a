package fleet

import (
	"context"
	"fmt"
	"strings"

	"fleetflow-service/internal/domain/fleet"
)

// ========== Vehicles ==========

func (s *Service) AddVehicle(ctx context.Context, req fleet.CreateVehicleRequest) (*fleet.Vehicle, error) {
	v, err := s.engine.AddVehicle(req)
	if err != nil {
		return nil, err
	}
	s.persist("add vehicle", s.store.SaveVehicle(ctx, v))
	s.record(ctx, "vehicle", "primary", fmt.Sprintf("%s added to fleet – License: %s", v.Name, v.LicensePlate))
	return v, nil
}

func (s *Service) UpdateVehicle(ctx context.Context, id string, req fleet.UpdateVehicleRequest) (*fleet.Vehicle, error) {
	v, err := s.engine.UpdateVehicle(id, req)
	if err != nil {
		return nil, err
	}
	s.persist("update vehicle", s.store.SaveVehicle(ctx, v))
	s.record(ctx, "vehicle", "primary", fmt.Sprintf("%s details updated", v.Name))
	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.engine.DeleteVehicle(id); err != nil {
		return err
	}
	s.persist("delete vehicle", s.store.DeleteVehicle(ctx, id))
	s.record(ctx, "vehicle", "danger", fmt.Sprintf("Vehicle %s removed from fleet", id))
	s.pushAlerts()
	return nil
}

func (s *Service) ToggleVehicleOutOfService(ctx context.Context, id string) (*fleet.Vehicle, error) {
	v, err := s.engine.ToggleVehicleOutOfService(id)
	if err != nil {
		return nil, err
	}
	s.persist("toggle vehicle", s.store.SaveVehicle(ctx, v))
	s.record(ctx, "vehicle", "warning", fmt.Sprintf("%s status changed to %s", v.Name, v.Status))
	s.pushAlerts()
	return v, nil
}

// ========== Drivers ==========

func (s *Service) AddDriver(ctx context.Context, req fleet.CreateDriverRequest) (*fleet.Driver, error) {
	d, err := s.engine.AddDriver(req)
	if err != nil {
		return nil, err
	}
	s.persist("add driver", s.store.SaveDriver(ctx, d))
	s.record(ctx, "driver", "primary", fmt.Sprintf("%s joined the roster – License: %s", d.Name, d.LicenseNumber))
	return d, nil
}

func (s *Service) UpdateDriver(ctx context.Context, id string, req fleet.UpdateDriverRequest) (*fleet.Driver, error) {
	d, err := s.engine.UpdateDriver(id, req)
	if err != nil {
		return nil, err
	}
	s.persist("update driver", s.store.SaveDriver(ctx, d))
	s.record(ctx, "driver", "primary", fmt.Sprintf("%s details updated", d.Name))
	s.pushAlerts()
	return d, nil
}

func (s *Service) DeleteDriver(ctx context.Context, id string) error {
	if err := s.engine.DeleteDriver(id); err != nil {
		return err
	}
	s.persist("delete driver", s.store.DeleteDriver(ctx, id))
	s.record(ctx, "driver", "danger", fmt.Sprintf("Driver %s removed from roster", id))
	s.pushAlerts()
	return nil
}

// ========== Trips ==========

func (s *Service) AddTrip(ctx context.Context, req fleet.CreateTripRequest) (*fleet.Trip, error) {
	t, err := s.engine.AddTrip(req)
	if err != nil {
		return nil, err
	}
	s.persist("add trip", s.store.SaveTrip(ctx, t))
	s.record(ctx, "trip", "info", fmt.Sprintf("Trip #%s created – %s to %s", strings.ToUpper(t.ID), t.Origin, t.Destination))
	return t, nil
}

func (s *Service) DispatchTrip(ctx context.Context, id string) (*fleet.Trip, error) {
	res, err := s.engine.DispatchTrip(id)
	if err != nil {
		return nil, err
	}
	s.persist("dispatch trip", s.store.SaveTripTransition(ctx, &res.Trip, res.Vehicle, res.Driver))
	vehicleName := res.Trip.VehicleID
	if res.Vehicle != nil {
		vehicleName = res.Vehicle.Name
	}
	s.record(ctx, "trip", "info", fmt.Sprintf("Trip #%s dispatched – %s en route to %s",
		strings.ToUpper(res.Trip.ID), vehicleName, res.Trip.Destination))
	s.pushAlerts()
	return &res.Trip, nil
}

func (s *Service) CompleteTrip(ctx context.Context, id string, finalOdometer *int) (*fleet.Trip, error) {
	res, err := s.engine.CompleteTrip(id, finalOdometer)
	if err != nil {
		return nil, err
	}
	s.persist("complete trip", s.store.SaveTripTransition(ctx, &res.Trip, res.Vehicle, res.Driver))
	vehicleName := res.Trip.VehicleID
	if res.Vehicle != nil {
		vehicleName = res.Vehicle.Name
	}
	s.record(ctx, "trip", "success", fmt.Sprintf("Trip #%s completed – %s arrived in %s",
		strings.ToUpper(res.Trip.ID), vehicleName, res.Trip.Destination))
	s.pushAlerts()
	return &res.Trip, nil
}

func (s *Service) CancelTrip(ctx context.Context, id string) (*fleet.Trip, error) {
	res, err := s.engine.CancelTrip(id)
	if err != nil {
		return nil, err
	}
	s.persist("cancel trip", s.store.SaveTripTransition(ctx, &res.Trip, res.Vehicle, res.Driver))
	s.record(ctx, "trip", "warning", fmt.Sprintf("Trip #%s cancelled", strings.ToUpper(res.Trip.ID)))
	s.pushAlerts()
	return &res.Trip, nil
}

// ========== Maintenance ==========

func (s *Service) AddMaintenanceRecord(ctx context.Context, req fleet.CreateMaintenanceRequest) (*fleet.MaintenanceRecord, error) {
	res, err := s.engine.AddMaintenanceRecord(req)
	if err != nil {
		return nil, err
	}
	s.persist("add maintenance", s.store.SaveMaintenanceResult(ctx, &res.Record, res.Vehicle))
	vehicleName := res.Record.VehicleID
	if res.Vehicle != nil {
		vehicleName = res.Vehicle.Name
	}
	s.record(ctx, "maintenance", "warning", fmt.Sprintf("%s checked into maintenance – %s", vehicleName, res.Record.ServiceType))
	s.pushAlerts()
	return &res.Record, nil
}

func (s *Service) CompleteMaintenanceRecord(ctx context.Context, id string) (*fleet.MaintenanceRecord, error) {
	res, err := s.engine.CompleteMaintenanceRecord(id)
	if err != nil {
		return nil, err
	}
	s.persist("complete maintenance", s.store.SaveMaintenanceResult(ctx, &res.Record, res.Vehicle))
	vehicleName := res.Record.VehicleID
	if res.Vehicle != nil {
		vehicleName = res.Vehicle.Name
	}
	s.record(ctx, "maintenance", "success", fmt.Sprintf("%s back from maintenance – %s done", vehicleName, res.Record.ServiceType))
	s.pushAlerts()
	return &res.Record, nil
}

// ========== Fuel and expenses ==========

func (s *Service) AddFuelLog(ctx context.Context, req fleet.CreateFuelLogRequest) (*fleet.FuelLog, error) {
	f, err := s.engine.AddFuelLog(req)
	if err != nil {
		return nil, err
	}
	s.persist("add fuel log", s.store.SaveFuelLog(ctx, f))
	s.record(ctx, "fuel", "success", fmt.Sprintf("Fuel logged for vehicle %s – %.0fL at ₹%.0f", f.VehicleID, f.Liters, f.Cost))
	return f, nil
}

func (s *Service) AddExpense(ctx context.Context, req fleet.CreateExpenseRequest) (*fleet.Expense, error) {
	x, err := s.engine.AddExpense(req)
	if err != nil {
		return nil, err
	}
	s.persist("add expense", s.store.SaveExpense(ctx, x))
	s.record(ctx, "expense", "info", fmt.Sprintf("%s expense of ₹%.0f recorded for vehicle %s", x.Type, x.Amount, x.VehicleID))
	return x, nil
}

// ========== Incidents ==========

func (s *Service) ReportIncident(ctx context.Context, req fleet.ReportIncidentRequest) (*fleet.Incident, error) {
	res, err := s.engine.ReportIncident(req)
	if err != nil {
		return nil, err
	}
	s.persist("report incident", s.store.SaveIncidentResult(ctx, &res.Incident, &res.Vehicle, res.CancelledTrip, res.SuspendedDriver))
	s.record(ctx, "incident", "danger", fmt.Sprintf("%s incident reported for %s – vehicle taken out of service",
		res.Incident.Severity, res.Vehicle.Name))
	if res.SuspendedDriver != nil {
		s.record(ctx, "driver", "danger", fmt.Sprintf("%s duty status changed to Suspended", res.SuspendedDriver.Name))
	}
	s.pushAlerts()
	return &res.Incident, nil
}
