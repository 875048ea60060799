package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tablescrape/tablescrape/api/handler"
	"github.com/tablescrape/tablescrape/api/middleware"
	"github.com/tablescrape/tablescrape/cache"
	"github.com/tablescrape/tablescrape/config"
	"github.com/tablescrape/tablescrape/store"
)

// NewRouter creates a configured Gin engine with all viewer routes and
// middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always
// work. Every route is read-only; the viewer never touches crawl state.
func NewRouter(st *store.Store, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(st, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.GET("/categories", handler.ListCategories(st))
	protected.GET("/categories/:category", handler.ShowCategory(st, cc))
	protected.GET("/categories/:category/artifacts/:name", handler.ShowArtifact(st, cc))

	return r
}
