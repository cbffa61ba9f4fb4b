package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	temporalclient "go.temporal.io/sdk/client"

	"github.com/edvin/edgedomains/internal/api/handler"
	mw "github.com/edvin/edgedomains/internal/api/middleware"
	"github.com/edvin/edgedomains/internal/core"
)

type Server struct {
	router         chi.Router
	logger         zerolog.Logger
	services       *core.Services
	corePool       *pgxpool.Pool
	temporalClient temporalclient.Client
	auditLogger    *mw.AuditLogger
}

// NewServer wires the router. corePool may be nil, which disables API key
// authentication and the audit log; the Lambda front door runs that way
// behind the API gateway's own key check.
func NewServer(logger zerolog.Logger, services *core.Services, temporalClient temporalclient.Client, corePool *pgxpool.Pool) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		logger:         logger,
		services:       services,
		corePool:       corePool,
		temporalClient: temporalClient,
	}
	if corePool != nil {
		s.auditLogger = mw.NewAuditLogger(corePool, logger)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Group(func(r chi.Router) {
		if s.services.APIKey != nil {
			r.Use(mw.Auth(s.services.APIKey))
		}
		if s.auditLogger != nil {
			r.Use(s.auditLogger.Middleware)
		}

		// Domains
		domain := handler.NewDomain(s.services.Domain)
		r.Get("/domains", domain.List)
		r.Post("/domains", domain.Register)
		r.Delete("/domains", domain.Deregister)
		r.Get("/domains/{domainName}", domain.CName)

		// Distribution
		distribution := handler.NewDistribution(s.services.Distribution)
		r.Patch("/distribution", distribution.Reconcile)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if s.corePool != nil {
		if err := s.corePool.Ping(ctx); err != nil {
			checks["core_db"] = err.Error()
			healthy = false
		} else {
			checks["core_db"] = "ok"
		}
	}

	if _, err := s.temporalClient.CheckHealth(ctx, &temporalclient.CheckHealthRequest{}); err != nil {
		checks["temporal"] = err.Error()
		healthy = false
	} else {
		checks["temporal"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

// Close flushes the audit log.
func (s *Server) Close() {
	if s.auditLogger != nil {
		s.auditLogger.Close()
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
