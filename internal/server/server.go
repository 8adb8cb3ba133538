package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/neisdata/neis/internal/aggregate"
	"github.com/neisdata/neis/internal/dataset"
	"github.com/neisdata/neis/internal/handler"
	"github.com/neisdata/neis/internal/openapi"
	"github.com/neisdata/neis/internal/server/middleware"
	"github.com/neisdata/neis/internal/service"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	RateLimitPerMin int // 0 disables rate limiting
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins:     []string{"*"},
	}
}

// Server is the top-level HTTP server for neis. It owns the chi router and
// the injected domain services; nothing is reached through globals.
type Server struct {
	cfg        Config
	router     chi.Router
	provider   *dataset.Provider
	engine     *aggregate.Engine
	authority  *service.TokenAuthority
	overrides  *service.OverrideStore
	resolver   *service.EmissionsResolver
	operator   *service.OperatorAuth
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with all routes and middleware wired. Call
// ListenAndServe to start accepting connections.
func New(cfg Config, provider *dataset.Provider, engine *aggregate.Engine,
	authority *service.TokenAuthority, overrides *service.OverrideStore,
	resolver *service.EmissionsResolver, operator *service.OperatorAuth,
	logger *slog.Logger) *Server {

	s := &Server{
		cfg:       cfg,
		provider:  provider,
		engine:    engine,
		authority: authority,
		overrides: overrides,
		resolver:  resolver,
		operator:  operator,
		logger:    logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(s.cfg.RateLimitPerMin))

	keyHandler := handler.NewKeyHandler(s.authority)
	energyHandler := handler.NewEnergyHandler(s.engine, s.resolver)
	overrideHandler := handler.NewOverrideHandler(s.overrides)
	adminHandler := handler.NewAdminHandler(s.provider)

	// --- Health checks and API docs (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Get("/openapi.json", s.handleOpenAPI)

	// --- Public API ---
	r.Route("/api", func(r chi.Router) {
		r.Get("/generate-key", keyHandler.GenerateKey)

		r.Route("/energy", func(r chi.Router) {
			r.Get("/examples", energyHandler.Examples)

			// Token-gated endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAPIKey(s.authority))
				r.Get("/summary", energyHandler.NationalSummary)
				r.Get("/region/{name}", energyHandler.RegionSummary)
				r.Post("/emissions/manual", overrideHandler.SetManualEmissions)
			})
		})

		// Operator endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireOperator(s.operator))
			r.Post("/reload", adminHandler.ReloadDataset)
		})
	})

	s.router = r
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz reports dataset state. An empty dataset is not a failure
// (missing files degrade to empty tables), so readiness stays 200 but the
// payload shows what was loaded.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	snap := s.provider.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          "ok",
		"generation_rows": len(snap.Generation),
		"emissions_rows":  len(snap.Emissions),
		"regions":         len(s.engine.KnownRegions()),
	})
}

// handleOpenAPI serves the OpenAPI 3.1 document for the public surface.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc := openapi.Document(fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.Port))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(doc)
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests within the configured shutdown timeout.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
