package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"chargemap/internal/http/handlers"
	"chargemap/internal/http/middleware"
	"chargemap/internal/metrics"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers    *handlers.AuthHandlers
	StationHandlers *handlers.StationHandlers
	Dashboard       *handlers.DashboardHandler
	TokenVerifier   middleware.TokenVerifier
	OriginGate      *middleware.OriginGate
	Metrics         *metrics.HTTPMetrics
	MetricsRegistry *prometheus.Registry
	Logger          *zap.Logger
	Production      bool
}

// NewRouter wires HTTP routes with the middleware chain: recovery → logging
// → metrics → origin gate → CORS → mux. Station reads are public; mutations
// require a verified bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handlers.NewLivenessHandler())
	mux.Handle("GET /health", handlers.NewHealthHandler())
	if deps.MetricsRegistry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	mux.HandleFunc("POST /api/auth/register", deps.AuthHandlers.Register)
	mux.HandleFunc("POST /api/auth/login", deps.AuthHandlers.Login)

	mux.HandleFunc("GET /api/stations", deps.StationHandlers.List)
	mux.HandleFunc("GET /api/stations/{id}", deps.StationHandlers.Get)
	mux.HandleFunc("GET /api/dashboard", deps.Dashboard.Summary)

	authenticated := middleware.Auth(deps.TokenVerifier)
	mux.Handle("POST /api/stations", authenticated(http.HandlerFunc(deps.StationHandlers.Create)))
	mux.Handle("PUT /api/stations/{id}", authenticated(http.HandlerFunc(deps.StationHandlers.Update)))
	mux.Handle("DELETE /api/stations/{id}", authenticated(http.HandlerFunc(deps.StationHandlers.Delete)))

	corsHandler := cors.New(cors.Options{
		AllowOriginFunc:  deps.OriginGate.IsAllowedOrigin,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	chain := []middleware.Middleware{
		middleware.Recovery(deps.Logger, deps.Production),
		middleware.Logging(deps.Logger),
	}
	if deps.Metrics != nil {
		chain = append(chain, middleware.Metrics(deps.Metrics))
	}
	chain = append(chain, deps.OriginGate.Handler(), corsHandler.Handler)

	return middleware.Chain(mux, chain...)
}
