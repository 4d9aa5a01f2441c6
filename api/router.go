package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/use-agent/profilepix/api/handler"
	"github.com/use-agent/profilepix/api/middleware"
	"github.com/use-agent/profilepix/cache"
	"github.com/use-agent/profilepix/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestContext → Logger → Metrics
//	API:     RateLimit (if enabled)
//
// cc may be nil to disable caching.
func NewRouter(sc handler.ProfileScraper, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestContext())
	r.Use(gin.Logger())
	r.Use(middleware.Metrics())

	r.GET("/", handler.Index(startTime))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	if cfg.RateLimit.Enabled {
		apiGroup.Use(middleware.RateLimit(cfg.RateLimit))
	}
	apiGroup.GET("/all", handler.Images(sc, cc, cfg.Fetch.Domain, startTime))

	return r
}
