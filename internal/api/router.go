package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/orgdesk/orgdesk/internal/app"
	"github.com/orgdesk/orgdesk/internal/handlers"
	"github.com/orgdesk/orgdesk/internal/middleware"
)

// NewRouter builds the Gin engine, wires middleware and registers core routes.
func NewRouter(db *gorm.DB, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	// Public endpoints
	r.GET("/", handlers.Root())
	if cfg.Monitoring.Health.Enabled {
		r.GET("/health", handlers.Health())
	}

	api := r.Group("/api")

	orgHandler, err := handlers.NewOrganizationHandler(db)
	if err != nil {
		return nil, err
	}
	userHandler, err := handlers.NewUserHandler(db)
	if err != nil {
		return nil, err
	}

	registerOrganizationRoutes(api, orgHandler, userHandler)
	registerUserRoutes(api, userHandler)

	// Metrics endpoint
	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
