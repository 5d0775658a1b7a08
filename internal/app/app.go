package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"chargemap/internal/config"
	"chargemap/internal/db"
	httpserver "chargemap/internal/http"
	"chargemap/internal/http/handlers"
	"chargemap/internal/http/middleware"
	"chargemap/internal/metrics"
	"chargemap/internal/password"
	"chargemap/internal/repository"
	"chargemap/internal/service"
)

// App wires dependencies for the API service.
type App struct {
	server *httpserver.Server
	client *mongo.Client
	logger *zap.Logger
}

// New builds the application graph. The database connection and index
// creation must succeed before the HTTP listener binds; failure is fatal.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	client, err := db.NewMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, err
	}
	database := client.Database(cfg.Mongo.Database)

	if err := repository.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	userRepo := repository.NewUserRepository(database)
	stationRepo := repository.NewStationRepository(database)
	dashboardView := repository.NewDashboardView(database)

	hasher := password.NewBcryptHasher(0)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(userRepo, hasher, tokenSvc, logger)
	stationSvc := service.NewStationService(stationRepo, logger)
	dashboardSvc := service.NewDashboardService(dashboardView)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics := metrics.NewHTTPMetrics(registry)

	production := cfg.IsProduction()
	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandlers:    handlers.NewAuthHandlers(authSvc, logger, production),
		StationHandlers: handlers.NewStationHandlers(stationSvc, logger, production),
		Dashboard:       handlers.NewDashboardHandler(dashboardSvc, logger, production),
		TokenVerifier:   tokenSvc,
		OriginGate:      middleware.NewOriginGate(cfg.CORS.AllowedOrigins),
		Metrics:         httpMetrics,
		MetricsRegistry: registry,
		Logger:          logger,
		Production:      production,
	})
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		client: client,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.client != nil {
		if err := a.client.Disconnect(context.Background()); err != nil {
			a.logger.Warn("failed to disconnect mongo", zap.Error(err))
		}
	}
}
