// Package api provides the HTTP API for the ban check server.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/flamexhub/bancheck/internal/api/handlers"
	"github.com/flamexhub/bancheck/internal/api/middleware"
	"github.com/flamexhub/bancheck/internal/garena"
	"github.com/flamexhub/bancheck/internal/metrics"

	_ "github.com/flamexhub/bancheck/docs/api"
)

// Config holds configuration for the API router.
type Config struct {
	// CORSOrigin is served as Access-Control-Allow-Origin on every response.
	// Empty means all origins allowed.
	CORSOrigin string
	// Version information for the health and version endpoints.
	Version   string
	Commit    string
	BuildDate string
}

// DefaultConfig returns a Config with sensible defaults for development.
func DefaultConfig() Config {
	return Config{
		CORSOrigin: "*",
		Version:    "dev",
		Commit:     "unknown",
		BuildDate:  "unknown",
	}
}

// Router wraps a Gin engine with configured middleware and routes.
type Router struct {
	Engine *gin.Engine
	logger zerolog.Logger
}

// NewRouter creates a new Router with the given dependencies.
func NewRouter(cfg Config, checker *garena.Client, m *metrics.Metrics, logger zerolog.Logger) *Router {
	r := &Router{
		Engine: gin.New(),
		logger: logger.With().Str("component", "router").Logger(),
	}

	// Global middleware. CORS runs before route matching so preflight
	// requests succeed on any path.
	r.Engine.Use(gin.CustomRecovery(recoveryHandler))
	r.Engine.Use(middleware.RequestID())
	r.Engine.Use(middleware.RequestLogger(logger))
	r.Engine.Use(m.Middleware())
	r.Engine.Use(middleware.BodyLimit(middleware.DefaultMaxBodyBytes))
	r.Engine.Use(middleware.CORS(cfg.CORSOrigin))
	r.Engine.Use(middleware.SecurityHeaders())

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(cfg.Version, logger)
	healthHandler.RegisterPublicRoutes(r.Engine)

	// Prometheus metrics endpoint
	r.Engine.GET("/metrics", gin.WrapH(m.Handler()))

	// Swagger API documentation
	r.Engine.GET("/api/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/api/docs/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	// API routes
	apiGroup := r.Engine.Group("/api")

	banCheckHandler := handlers.NewBanCheckHandler(checker, logger)
	banCheckHandler.RegisterRoutes(apiGroup)

	versionHandler := handlers.NewVersionHandler(cfg.Version, cfg.Commit, cfg.BuildDate, logger)
	versionHandler.RegisterRoutes(apiGroup)

	// Unknown routes get a JSON 404 listing the public endpoints.
	r.Engine.NoRoute(handlers.NotFound)

	r.logger.Info().Msg("API router initialized")
	return r
}

// recoveryHandler converts panics into the standard error envelope.
func recoveryHandler(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, handlers.APIResponse{
		Status:  handlers.StatusError,
		Message: "Internal server error",
	})
}
