package fleet

import (
	"net/http"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/pkg/response"
	service "fleetflow-service/internal/service/fleet"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	fleetService *service.Service
}

func NewAnalyticsHandler(fleetService *service.Service) *AnalyticsHandler {
	return &AnalyticsHandler{fleetService: fleetService}
}

// SmartDispatch recommends the tightest-fit vehicle and the safest eligible
// driver for a pending load.
func (h *AnalyticsHandler) SmartDispatch(c *gin.Context) {
	var query fleet.DispatchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	if query.CargoWeight <= 0 {
		response.Error(c, http.StatusBadRequest, "cargo_weight must be positive", nil)
		return
	}
	if query.VehicleType != "" && !fleet.IsValidVehicleType(query.VehicleType) {
		response.Error(c, http.StatusBadRequest, "invalid vehicle type", nil)
		return
	}

	rec := h.fleetService.SmartDispatch(query.CargoWeight, query.VehicleType)
	response.Success(c, http.StatusOK, "dispatch recommendation computed", rec)
}

// MaintenanceForecast lists vehicles overdue for service.
func (h *AnalyticsHandler) MaintenanceForecast(c *gin.Context) {
	forecasts := h.fleetService.PredictiveAlerts()
	response.Success(c, http.StatusOK, "maintenance forecast computed", gin.H{
		"forecasts": forecasts,
		"count":     len(forecasts),
	})
}

// FinancialRisks lists financially underperforming vehicles.
func (h *AnalyticsHandler) FinancialRisks(c *gin.Context) {
	risks := h.fleetService.FinancialRisks()
	response.Success(c, http.StatusOK, "financial risks computed", gin.H{
		"risks": risks,
		"count": len(risks),
	})
}

// SystemAlerts returns the unified prioritized alert feed.
func (h *AnalyticsHandler) SystemAlerts(c *gin.Context) {
	alerts := h.fleetService.SystemAlerts()
	response.Success(c, http.StatusOK, "system alerts computed", gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// VehicleFinance returns a vehicle's cost breakdown, ROI and cost per km.
func (h *AnalyticsHandler) VehicleFinance(c *gin.Context) {
	id := c.Param("id")

	costs, err := h.fleetService.VehicleCosts(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	roi, err := h.fleetService.VehicleROI(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	perKm, err := h.fleetService.CostPerKm(id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle finance computed", gin.H{
		"costs":       costs,
		"roi":         roi,
		"cost_per_km": perKm,
	})
}

// Summary returns the dashboard KPI counts.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	response.Success(c, http.StatusOK, "fleet summary computed", h.fleetService.Summary())
}
