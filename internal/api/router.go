package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	// DefaultRequestTimeout bounds every non-streaming request.
	DefaultRequestTimeout = 10 * time.Second

	streamPath = "/api/v1/stream"
)

// RouterConfig tunes the global middleware chain. Zero values use defaults.
type RouterConfig struct {
	RequestTimeout time.Duration
	RateLimit      int // requests per client IP per minute
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds a request timeout (10 seconds by default) to everything except the stream.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimit, time.Minute),
		middleware.Timeout(cfg.RequestTimeout, streamPath),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/snapshot", handler.GetSnapshot)
		v1.GET("/chart", handler.GetChart)
		v1.GET("/selection", handler.GetSelection)
		v1.PUT("/selection", handler.PutSelection)
		v1.GET("/dashboard", handler.GetDashboard)
	}
	router.GET(streamPath, handler.Stream)

	return router
}
