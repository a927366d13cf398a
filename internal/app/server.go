package app

import (
	"context"
	"fmt"
	"log"

	"fleetflow-service/internal/config"
	"fleetflow-service/internal/db"
	"fleetflow-service/internal/engine"
	authHandler "fleetflow-service/internal/handlers/auth"
	fleetHandler "fleetflow-service/internal/handlers/fleet"
	wsHandler "fleetflow-service/internal/handlers/ws"
	"fleetflow-service/internal/middleware"
	"fleetflow-service/internal/pkg/session"
	"fleetflow-service/internal/pkg/token"
	"fleetflow-service/internal/repository/postgres"
	authUsecase "fleetflow-service/internal/service/auth"
	fleetUsecase "fleetflow-service/internal/service/fleet"
	"fleetflow-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	return &Server{cfg: cfg, engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectPostgres(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	if s.cfg.SeedDemoData {
		seeded, err := postgres.SeedDemoData(ctx, pool)
		if err != nil {
			return err
		}
		if seeded {
			logger.Info("demo fleet seeded")
		}
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
	})
	if err != nil {
		return err
	}

	// ----- Auth plumbing -----
	tokenManager := token.NewManager(s.cfg.JWTSecret, s.cfg.TokenTTL)
	sessionManager := session.NewManager(redisClient)

	authService, err := authUsecase.NewService(authUsecase.DemoAccounts(), tokenManager, sessionManager, logger)
	if err != nil {
		return err
	}

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// ----- Fleet engine + service -----
	rulesEngine := engine.New(logger)
	fleetRepo := postgres.NewFleetRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	fleetService := fleetUsecase.NewService(rulesEngine, fleetRepo, activityRepo, hub, logger)
	if err := fleetService.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to load fleet snapshot: %w", err)
	}

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:       authHandler.NewAuthHandler(authService),
		VehicleHandler:    fleetHandler.NewVehicleHandler(fleetService),
		DriverHandler:     fleetHandler.NewDriverHandler(fleetService),
		TripHandler:       fleetHandler.NewTripHandler(fleetService),
		OperationsHandler: fleetHandler.NewOperationsHandler(fleetService),
		AnalyticsHandler:  fleetHandler.NewAnalyticsHandler(fleetService),
		WSHandler:         wsHandler.NewWSHandler(hub, logger),
		AuthMiddleware:    middleware.AuthMiddleware(authService),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)
	SetupRouter(s.engine, handlers)

	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
