package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/PratikDhanave/pet-feeder-service/internal/auth"
	"github.com/PratikDhanave/pet-feeder-service/internal/config"
	"github.com/PratikDhanave/pet-feeder-service/internal/handlers"
	"github.com/PratikDhanave/pet-feeder-service/internal/logging"
	"github.com/PratikDhanave/pet-feeder-service/internal/metrics"
	"github.com/PratikDhanave/pet-feeder-service/internal/notify"
)

// Store is everything the router needs from persistence.
type Store interface {
	handlers.EventStore
	handlers.ScheduleStore
	Ping(ctx context.Context) error
}

// NewRouter wires operational endpoints and the feeder API.
// Public: /health, /ready, /metrics
// API (under cfg.API.BasePath, API key when configured): /event, /historial, /schedule
func NewRouter(cfg *config.Config, st Store, pub notify.Publisher, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(logging.Middleware(logger))
	r.Use(metrics.Middleware())
	if cors := corsMiddleware(cfg.API.CORS); cors != nil {
		r.Use(cors)
	}

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.API.BasePath)
	api.Use(auth.APIKeyMiddleware(cfg.API.APIKeys))

	handlers.RegisterEventRoutes(api, st, pub)
	handlers.RegisterHistoryRoutes(api, st, cfg.API.DefaultHistoryLimit)
	handlers.RegisterScheduleRoutes(api, st, pub)

	return r
}

// NewServer wraps the router in an http.Server with the configured timeouts.
func NewServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		IdleTimeout:       cfg.IdleTimeout(),
	}
}
