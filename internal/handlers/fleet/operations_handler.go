package fleet

import (
	"net/http"
	"strconv"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/pkg/response"
	service "fleetflow-service/internal/service/fleet"

	"github.com/gin-gonic/gin"
)

// OperationsHandler covers maintenance, fuel, expenses and incidents.
type OperationsHandler struct {
	fleetService *service.Service
}

func NewOperationsHandler(fleetService *service.Service) *OperationsHandler {
	return &OperationsHandler{fleetService: fleetService}
}

// ========== Maintenance ==========

func (h *OperationsHandler) ListMaintenance(c *gin.Context) {
	records := h.fleetService.MaintenanceRecords()
	response.Success(c, http.StatusOK, "maintenance records retrieved", gin.H{
		"records": records,
		"count":   len(records),
	})
}

// CreateMaintenance checks a vehicle into the shop.
func (h *OperationsHandler) CreateMaintenance(c *gin.Context) {
	var req fleet.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	record, err := h.fleetService.AddMaintenanceRecord(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "maintenance record created", record)
}

// CompleteMaintenance releases the vehicle back into service.
func (h *OperationsHandler) CompleteMaintenance(c *gin.Context) {
	record, err := h.fleetService.CompleteMaintenanceRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "maintenance completed", record)
}

// ========== Fuel ==========

func (h *OperationsHandler) ListFuelLogs(c *gin.Context) {
	logs := h.fleetService.FuelLogs()
	response.Success(c, http.StatusOK, "fuel logs retrieved", gin.H{
		"fuel_logs": logs,
		"count":     len(logs),
	})
}

func (h *OperationsHandler) CreateFuelLog(c *gin.Context) {
	var req fleet.CreateFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	log, err := h.fleetService.AddFuelLog(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "fuel log created", log)
}

// ========== Expenses ==========

func (h *OperationsHandler) ListExpenses(c *gin.Context) {
	expenses := h.fleetService.Expenses()
	response.Success(c, http.StatusOK, "expenses retrieved", gin.H{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

func (h *OperationsHandler) CreateExpense(c *gin.Context) {
	var req fleet.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	expense, err := h.fleetService.AddExpense(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "expense created", expense)
}

// ========== Incidents ==========

func (h *OperationsHandler) ListIncidents(c *gin.Context) {
	incidents := h.fleetService.Incidents()
	response.Success(c, http.StatusOK, "incidents retrieved", gin.H{
		"incidents": incidents,
		"count":     len(incidents),
	})
}

// ReportIncident records an incident and triggers the cascade: the vehicle
// goes out of service, its dispatched trip is cancelled, the driver
// suspended.
func (h *OperationsHandler) ReportIncident(c *gin.Context) {
	var req fleet.ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	incident, err := h.fleetService.ReportIncident(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "incident reported", incident)
}

// ========== Activity feed ==========

func (h *OperationsHandler) RecentActivity(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := h.fleetService.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "recent activity retrieved", gin.H{
		"activity": entries,
		"count":    len(entries),
	})
}
