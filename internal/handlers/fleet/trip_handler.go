package fleet

import (
	"net/http"

	"fleetflow-service/internal/domain/fleet"
	"fleetflow-service/internal/pkg/response"
	service "fleetflow-service/internal/service/fleet"

	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	fleetService *service.Service
}

func NewTripHandler(fleetService *service.Service) *TripHandler {
	return &TripHandler{fleetService: fleetService}
}

func (h *TripHandler) ListTrips(c *gin.Context) {
	trips := h.fleetService.Trips()
	response.Success(c, http.StatusOK, "trips retrieved", gin.H{
		"trips": trips,
		"count": len(trips),
	})
}

func (h *TripHandler) GetTrip(c *gin.Context) {
	t, err := h.fleetService.Trip(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "trip retrieved", t)
}

// CreateTrip opens a draft trip after validating vehicle capacity and the
// driver's license.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req fleet.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	t, err := h.fleetService.AddTrip(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "trip created", t)
}

// DispatchTrip moves a draft trip onto the road.
func (h *TripHandler) DispatchTrip(c *gin.Context) {
	t, err := h.fleetService.DispatchTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "trip dispatched", t)
}

// CompleteTrip closes a dispatched trip, optionally recording the final
// odometer reading.
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	var req fleet.CompleteTripRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid request body", err)
			return
		}
	}

	t, err := h.fleetService.CompleteTrip(c.Request.Context(), c.Param("id"), req.FinalOdometer)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "trip completed", t)
}

// CancelTrip aborts a draft or dispatched trip.
func (h *TripHandler) CancelTrip(c *gin.Context) {
	t, err := h.fleetService.CancelTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "trip cancelled", t)
}
