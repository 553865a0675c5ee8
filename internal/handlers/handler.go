package handlers

import (
	"gemini-research-go/internal/apierrors"
	"gemini-research-go/internal/config"
	"gemini-research-go/internal/discovery"
	"gemini-research-go/internal/logging"
	"gemini-research-go/internal/research"
	"github.com/gin-gonic/gin"
)

// Handler binds the research components to the HTTP presentation surface.
// It holds no per-session state: the credential, model and topic arrive in
// every request body and die with the response.
type Handler struct {
	cfg       *config.Config
	resolver  *discovery.Resolver
	generator *research.Generator
	logHub    *logging.StreamHub
}

// New builds the handler set.
func New(cfg *config.Config, logHub *logging.StreamHub) *Handler {
	return &Handler{
		cfg:       cfg,
		resolver:  discovery.NewResolver(cfg),
		generator: research.NewGenerator(cfg),
		logHub:    logHub,
	}
}

// abortWithError writes the typed error envelope. The trace rides along for
// the diagnostics panel; the UI decides whether to show it.
func abortWithError(c *gin.Context, err *apierrors.Error) {
	c.AbortWithStatusJSON(err.HTTPStatus(), gin.H{
		"error": gin.H{
			"message": err.Message,
			"type":    string(err.Category),
			"hint":    err.Hint,
			"trace":   err.Trace,
		},
	})
}
