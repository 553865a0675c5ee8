package handlers

import (
	"errors"
	"net/http"

	"gemini-research-go/internal/apierrors"
	"gemini-research-go/internal/discovery"
	"github.com/gin-gonic/gin"
)

type credentialRequest struct {
	APIKey string `json:"api_key"`
}

// ListModels resolves the model directory for the supplied credential.
// A degraded listing (every strategy failed) still answers 200 with an empty
// set plus the attempt trace; only a rejected credential is an error.
func (h *Handler) ListModels(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierrors.NewInvalidRequest("invalid request body: "+err.Error()))
		return
	}

	models, attempts, err := h.resolver.Resolve(c.Request.Context(), req.APIKey)
	if err != nil {
		abortTyped(c, err)
		return
	}
	if models == nil {
		models = []string{}
	}
	if attempts == nil {
		attempts = []discovery.CallAttempt{}
	}
	c.JSON(http.StatusOK, gin.H{
		"models":   models,
		"attempts": attempts,
	})
}

// DebugModels runs the diagnostic probe: every strategy, full summaries.
func (h *Handler) DebugModels(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierrors.NewInvalidRequest("invalid request body: "+err.Error()))
		return
	}

	report, err := h.resolver.Probe(c.Request.Context(), req.APIKey)
	if err != nil {
		abortTyped(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// abortTyped unwraps errors that are already typed and falls back to a
// generic rendering for anything else.
func abortTyped(c *gin.Context, err error) {
	var typed *apierrors.Error
	if errors.As(err, &typed) {
		abortWithError(c, typed)
		return
	}
	abortWithError(c, &apierrors.Error{
		Category: apierrors.CategoryGenerationFailed,
		Message:  err.Error(),
	})
}
