// ABOUTME: HTTP server for the AquaGuard API, health checks, and UI bundle
// ABOUTME: Wires gin routes, middleware, and mode-dependent static serving or CORS

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harper/aquaguard/internal/events"
	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/observability"
	"github.com/harper/aquaguard/internal/storage"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Assessor produces assessment text for a reading. Implementations never fail.
type Assessor interface {
	Assess(ctx context.Context, r models.SensorReading) string
}

// Options controls how the server is exposed.
type Options struct {
	Addr string
	// Production serves the UI bundle from StaticDir; otherwise CORS is enabled for DevOrigins.
	Production bool
	StaticDir  string
	DevOrigins []string
}

// Deps are the collaborators handlers use.
type Deps struct {
	Store     storage.Repository
	Assessor  Assessor
	Publisher events.Publisher
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// Server exposes the JSON API plus /healthz, /readyz, and /metrics.
type Server struct {
	httpServer *http.Server
	store      storage.Repository
	assessor   Assessor
	publisher  events.Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// NewServer builds the router. Call gin.SetMode before this to pick gin's own mode.
func NewServer(opts Options, deps Deps) *Server {
	s := &Server{
		store:     deps.Store,
		assessor:  deps.Assessor,
		publisher: deps.Publisher,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		clock:     deps.Clock,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.publisher == nil {
		s.publisher = events.Nop{}
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.observe())

	if !opts.Production && len(opts.DevOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.DevOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowHeaders: []string{"Content-Type", requestIDHeader},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/healthz", s.handleHealth)
	r.GET("/readyz", s.handleReady)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/login", s.handleLogin)
	api.GET("/locations", s.handleListLocations)
	api.POST("/locations", s.handleCreateLocation)
	api.PATCH("/locations/:id/simulate", s.handleSimulate)
	api.POST("/assessments", s.handleAssess)

	if opts.Production {
		r.NoRoute(spaHandler(opts.StaticDir))
	} else {
		r.NoRoute(notFound)
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
