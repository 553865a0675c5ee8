package server

import (
	"net/http"

	"gemini-research-go/internal/config"
	"gemini-research-go/internal/handlers"
	"gemini-research-go/internal/logging"
	mw "gemini-research-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

// BuildEngine assembles the gin engine: middleware stack, JSON API, log
// stream, embedded UI.
func BuildEngine(cfg *config.Config, logHub *logging.StreamHub) *gin.Engine {
	if !cfg.Logging.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(mw.Recovery(), mw.RequestID(), mw.RequestLogger(), mw.CORS())

	h := handlers.New(cfg, logHub)

	api := engine.Group("/api", mw.RateLimit(cfg.Server.RateLimitPerMinute))
	api.POST("/models", h.ListModels)
	api.POST("/models/debug", h.DebugModels)
	api.POST("/research", h.Research)
	api.POST("/export", h.Export)

	// The log feed is long-lived and must not consume rate-limit tokens.
	engine.GET("/api/logs/stream", h.StreamLogs)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerWebUI(engine)
	return engine
}
