package app

import (
	authHandler "fleetflow-service/internal/handlers/auth"
	fleetHandler "fleetflow-service/internal/handlers/fleet"
	wsHandler "fleetflow-service/internal/handlers/ws"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler       *authHandler.AuthHandler
	VehicleHandler    *fleetHandler.VehicleHandler
	DriverHandler     *fleetHandler.DriverHandler
	TripHandler       *fleetHandler.TripHandler
	OperationsHandler *fleetHandler.OperationsHandler
	AnalyticsHandler  *fleetHandler.AnalyticsHandler
	WSHandler         *wsHandler.WSHandler
	AuthMiddleware    gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.AuthMiddleware, h.WSHandler.Connect)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.GET("/roles", h.AuthHandler.Roles)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware)
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.Me)
	}

	// ==================== Vehicles ====================
	vehicles := api.Group("/vehicles")
	vehicles.Use(h.AuthMiddleware)
	{
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.GET("/available", h.VehicleHandler.ListAvailableVehicles)
		vehicles.GET("/:id", h.VehicleHandler.GetVehicle)
		vehicles.GET("/:id/finance", h.AnalyticsHandler.VehicleFinance)
		vehicles.POST("", h.VehicleHandler.CreateVehicle)
		vehicles.PUT("/:id", h.VehicleHandler.UpdateVehicle)
		vehicles.POST("/:id/toggle-service", h.VehicleHandler.ToggleOutOfService)
		vehicles.DELETE("/:id", h.VehicleHandler.DeleteVehicle)
	}

	// ==================== Drivers ====================
	drivers := api.Group("/drivers")
	drivers.Use(h.AuthMiddleware)
	{
		drivers.GET("", h.DriverHandler.ListDrivers)
		drivers.GET("/available", h.DriverHandler.ListAvailableDrivers)
		drivers.GET("/:id", h.DriverHandler.GetDriver)
		drivers.GET("/:id/stats", h.DriverHandler.GetDriverStats)
		drivers.POST("", h.DriverHandler.CreateDriver)
		drivers.PUT("/:id", h.DriverHandler.UpdateDriver)
		drivers.DELETE("/:id", h.DriverHandler.DeleteDriver)
	}

	// ==================== Trips ====================
	trips := api.Group("/trips")
	trips.Use(h.AuthMiddleware)
	{
		trips.GET("", h.TripHandler.ListTrips)
		trips.GET("/:id", h.TripHandler.GetTrip)
		trips.POST("", h.TripHandler.CreateTrip)
		trips.POST("/:id/dispatch", h.TripHandler.DispatchTrip)
		trips.POST("/:id/complete", h.TripHandler.CompleteTrip)
		trips.POST("/:id/cancel", h.TripHandler.CancelTrip)
	}

	// ==================== Maintenance ====================
	maintenance := api.Group("/maintenance")
	maintenance.Use(h.AuthMiddleware)
	{
		maintenance.GET("", h.OperationsHandler.ListMaintenance)
		maintenance.POST("", h.OperationsHandler.CreateMaintenance)
		maintenance.POST("/:id/complete", h.OperationsHandler.CompleteMaintenance)
	}

	// ==================== Fuel & Expenses ====================
	fuel := api.Group("/fuel-logs")
	fuel.Use(h.AuthMiddleware)
	{
		fuel.GET("", h.OperationsHandler.ListFuelLogs)
		fuel.POST("", h.OperationsHandler.CreateFuelLog)
	}

	expenses := api.Group("/expenses")
	expenses.Use(h.AuthMiddleware)
	{
		expenses.GET("", h.OperationsHandler.ListExpenses)
		expenses.POST("", h.OperationsHandler.CreateExpense)
	}

	// ==================== Incidents ====================
	incidents := api.Group("/incidents")
	incidents.Use(h.AuthMiddleware)
	{
		incidents.GET("", h.OperationsHandler.ListIncidents)
		incidents.POST("", h.OperationsHandler.ReportIncident)
	}

	// ==================== Analytics ====================
	analytics := api.Group("/analytics")
	analytics.Use(h.AuthMiddleware)
	{
		analytics.GET("/dispatch", h.AnalyticsHandler.SmartDispatch)
		analytics.GET("/maintenance-forecast", h.AnalyticsHandler.MaintenanceForecast)
		analytics.GET("/financial-risks", h.AnalyticsHandler.FinancialRisks)
		analytics.GET("/alerts", h.AnalyticsHandler.SystemAlerts)
		analytics.GET("/summary", h.AnalyticsHandler.Summary)
	}

	// ==================== Activity Feed ====================
	activity := api.Group("/activity")
	activity.Use(h.AuthMiddleware)
	{
		activity.GET("", h.OperationsHandler.RecentActivity)
	}
}
