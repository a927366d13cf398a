package fleet

import (
	"net/http"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/pkg/response"
	service "fleetflow-service/internal/service/fleet"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	fleetService *service.Service
}

func NewDriverHandler(fleetService *service.Service) *DriverHandler {
	return &DriverHandler{fleetService: fleetService}
}

func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers := h.fleetService.Drivers()
	response.Success(c, http.StatusOK, "drivers retrieved", gin.H{
		"drivers": drivers,
		"count":   len(drivers),
	})
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	d, err := h.fleetService.Driver(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "driver retrieved", d)
}

func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req fleet.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	d, err := h.fleetService.AddDriver(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "driver created", d)
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var req fleet.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	d, err := h.fleetService.UpdateDriver(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "driver updated", d)
}

func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	if err := h.fleetService.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "driver deleted", nil)
}

// GetDriverStats returns a driver's trip completion summary.
func (h *DriverHandler) GetDriverStats(c *gin.Context) {
	stats, err := h.fleetService.DriverTripStats(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "driver stats retrieved", stats)
}

// ListAvailableDrivers returns drivers eligible for dispatch, optionally
// filtered to those licensed for a vehicle type.
func (h *DriverHandler) ListAvailableDrivers(c *gin.Context) {
	vehicleType := fleet.VehicleType(c.Query("vehicle_type"))
	if vehicleType != "" && !fleet.IsValidVehicleType(vehicleType) {
		response.Error(c, http.StatusBadRequest, "invalid vehicle type", nil)
		return
	}

	drivers := h.fleetService.AvailableDrivers(vehicleType)
	response.Success(c, http.StatusOK, "available drivers retrieved", gin.H{
		"drivers": drivers,
		"count":   len(drivers),
	})
}
