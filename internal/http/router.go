// Package httpapi wires the diagnostics HTTP transport (Gin) to the
// offline core's services and middleware. The server is meant to bind
// loopback only: it is a debug overlay for the embedding client, not a
// public API.
//
// Middleware ordering: RequestID → Logger → Recovery, then metrics,
// security headers, gzip, and CORS.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sportsedge/offline-core/internal/config"
	"github.com/sportsedge/offline-core/internal/connectivity"
	"github.com/sportsedge/offline-core/internal/http/handlers"
	"github.com/sportsedge/offline-core/internal/http/middleware"
	"github.com/sportsedge/offline-core/internal/services"
)

// Deps are the constructed core services the router exposes.
type Deps struct {
	Store   *services.OfflineStore
	Sync    *services.SyncCoordinator
	Monitor *connectivity.Monitor
}

// NewRouter builds the diagnostics engine.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORS.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Content-Type", "X-Request-ID"},
		}))
	}

	h := &handlers.DebugHandler{Store: deps.Store, Sync: deps.Sync, Monitor: deps.Monitor}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	dbg := r.Group("/debug")
	{
		dbg.GET("/status", h.Status)
		dbg.GET("/storage", h.Storage)
		dbg.POST("/storage/clear", h.ClearStorage)
		dbg.POST("/storage/sweep", h.Sweep)
		dbg.POST("/sync", h.TriggerSync)
		dbg.GET("/cache/:table", h.ListCache)
		dbg.GET("/search", h.SearchCache)
	}

	return r
}
