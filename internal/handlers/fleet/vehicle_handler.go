package fleet

import (
	"net/http"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/pkg/response"
	service "fleetflow-service/internal/service/fleet"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	fleetService *service.Service
}

func NewVehicleHandler(fleetService *service.Service) *VehicleHandler {
	return &VehicleHandler{fleetService: fleetService}
}

// ListVehicles returns every vehicle in insertion order.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles := h.fleetService.Vehicles()
	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// GetVehicle returns a single vehicle by id.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	v, err := h.fleetService.Vehicle(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle retrieved", v)
}

// CreateVehicle registers a vehicle in the fleet.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req fleet.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	v, err := h.fleetService.AddVehicle(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "vehicle created", v)
}

// UpdateVehicle edits vehicle details. Status cannot be set here.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req fleet.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	v, err := h.fleetService.UpdateVehicle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle updated", v)
}

// DeleteVehicle removes a vehicle from the fleet.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.fleetService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle deleted", nil)
}

// ToggleOutOfService flips a vehicle in or out of service.
func (h *VehicleHandler) ToggleOutOfService(c *gin.Context) {
	v, err := h.fleetService.ToggleVehicleOutOfService(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle status toggled", v)
}

// ListAvailableVehicles returns vehicles eligible for dispatch.
func (h *VehicleHandler) ListAvailableVehicles(c *gin.Context) {
	vehicles := h.fleetService.AvailableVehicles()
	response.Success(c, http.StatusOK, "available vehicles retrieved", gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}
