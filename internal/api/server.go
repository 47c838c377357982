package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/tradejournal/internal/api/handler/api"
	"github.com/newthinker/tradejournal/internal/journal"
	"github.com/newthinker/tradejournal/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the trade journal HTTP API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration. An empty MetricsPath disables the
// Prometheus endpoint.
type Config struct {
	Host        string
	Port        int
	MetricsPath string
}

// Dependencies are the collaborators the routes are wired to.
// Metrics may be nil.
type Dependencies struct {
	Journal *journal.Service
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Journal == nil {
		return nil, fmt.Errorf("journal service required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	s := &Server{logger: logger, mux: mux}
	s.setupRoutes(cfg, deps)

	var handler http.Handler = mux
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = metrics.LoggingMiddleware(logger)(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	trades := apihandler.NewTradesHandler(deps.Journal)
	s.mux.HandleFunc("GET /api/trades", trades.List)
	s.mux.HandleFunc("POST /api/trades", trades.Create)
	s.mux.HandleFunc("GET /api/trades/{id}", trades.Get)
	s.mux.HandleFunc("PUT /api/trades/{id}", trades.Update)
	s.mux.HandleFunc("DELETE /api/trades/{id}", trades.Delete)

	views := apihandler.NewAnalyticsHandler(deps.Journal)
	s.mux.HandleFunc("GET /api/analytics/report", views.Report)
	s.mux.HandleFunc("GET /api/analytics/breakdown", views.Breakdown)
	s.mux.HandleFunc("GET /api/analytics/equity", views.Equity)
	s.mux.HandleFunc("GET /api/analytics/radar", views.Radar)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
