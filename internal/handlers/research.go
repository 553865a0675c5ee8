package handlers

import (
	"net/http"

	"gemini-research-go/internal/apierrors"
	"gemini-research-go/internal/research"
	"github.com/gin-gonic/gin"
)

type researchRequest struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
	Topic  string `json:"topic"`
}

// Research runs one report generation round trip.
func (h *Handler) Research(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierrors.NewInvalidRequest("invalid request body: "+err.Error()))
		return
	}
	c.Set("model", req.Model)

	result, err := h.generator.Generate(c.Request.Context(), req.APIKey, research.Request{
		Topic: req.Topic,
		Model: req.Model,
	})
	if err != nil {
		abortTyped(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report_id": result.ReportID,
		"topic":     result.Topic,
		"model":     result.Model,
		"text":      result.Text,
	})
}
