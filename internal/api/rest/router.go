package rest

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/auth"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/config"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/analytics"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/disposition"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/service/ingest"
)

// Dependencies are the services the API is built on. Metrics, MetricsHandler,
// Events and DB are optional.
type Dependencies struct {
	Orders      OrderReader
	Analytics   analytics.Service
	Disposition disposition.Service
	Ingest      ingest.Service
	Tokens      TokenValidator

	DB             Pinger
	Metrics        HTTPMetrics
	MetricsHandler http.Handler
	Events         http.Handler
}

// NewRouter builds the HTTP handler with its middleware chain.
func NewRouter(cfg *config.Config, deps Dependencies, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Orders == nil || deps.Analytics == nil || deps.Disposition == nil || deps.Ingest == nil {
		return nil, fmt.Errorf("orders, analytics, disposition and ingest services are required")
	}
	if cfg.Auth.Enabled && deps.Tokens == nil {
		return nil, fmt.Errorf("token validator is required when auth is enabled")
	}

	var contract *ContractValidationMiddleware
	if cfg.Server.ValidateContract {
		v, err := NewContractValidator()
		if err != nil {
			return nil, err
		}
		contract = NewContractValidationMiddleware(v, DefaultContractValidationConfig(), logger)
	}

	maxUpload := cfg.Server.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}

	h := &Handlers{
		baseHandler:    newBaseHandler(logger, cfg.Version),
		orders:         deps.Orders,
		analytics:      deps.Analytics,
		disposition:    deps.Disposition,
		ingest:         deps.Ingest,
		db:             deps.DB,
		maxUploadBytes: maxUpload,
	}
	authn := NewAuthenticator(deps.Tokens, cfg.Auth.Enabled, logger)

	mux := http.NewServeMux()
	route := func(pattern string, handler http.HandlerFunc, mws ...Middleware) {
		chain := append([]Middleware{routeMiddleware(pattern)}, mws...)
		mux.Handle(pattern, NewMiddlewareChain(chain...).Then(handler))
	}
	anyRole := authn.Require()
	analyst := authn.Require(auth.RoleAnalyst)
	agent := authn.Require(auth.RoleAgent)
	validate := validateContract(contract)

	route("GET /health", h.handleHealth)
	if deps.MetricsHandler != nil {
		route("GET /metrics", deps.MetricsHandler.ServeHTTP)
	}

	route("GET /api/stats", h.handleStats, anyRole, validate)
	route("GET /api/categories", h.handleCategories, anyRole, validate)
	route("GET /api/cities", h.handleCities, anyRole, validate)
	route("GET /api/trends", h.handleTrends, anyRole, validate)
	route("GET /api/orders", h.handleListOrders, anyRole, validate)
	route("GET /api/orders/{order_id}", h.handleGetOrder, anyRole, validate)
	route("GET /api/fraud-summary/{order_id}", h.handleFraudSummary, anyRole, validate)
	route("PATCH /api/orders/{order_id}/status", h.handleUpdateStatus, analyst, validate)
	route("POST /api/orders/{order_id}/verification", h.handleSubmitVerification, agent, validate)
	route("GET /api/orders/{order_id}/verification", h.handleGetVerification, anyRole, validate)
	route("POST /api/upload", h.handleUpload, analyst, validate)

	if deps.Events != nil {
		route("GET /api/ws", deps.Events.ServeHTTP, anyRole)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, "ROUTE_NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})

	global := []Middleware{
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
	}
	if deps.Metrics != nil {
		global = append(global, MetricsMiddleware(deps.Metrics))
	}
	global = append(global,
		SecurityHeadersMiddleware(),
		CORSMiddleware(cfg.Server.AllowedOrigins),
		RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize),
	)

	return NewMiddlewareChain(global...).Then(mux), nil
}

func routeMiddleware(pattern string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setRoute(r.Context(), pattern)
			next.ServeHTTP(w, r)
		})
	}
}
