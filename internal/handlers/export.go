package handlers

import (
	"net/http"
	"strconv"

	"gemini-research-go/internal/apierrors"
	"gemini-research-go/internal/export"
	"github.com/gin-gonic/gin"
)

type exportRequest struct {
	Topic  string `json:"topic"`
	Text   string `json:"text"`
	Format string `json:"format"`
}

// Export encodes a report for download. Plain text always works; the
// document format degrades to an ExportUnavailable notice so the text export
// path stays usable.
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, apierrors.NewInvalidRequest("invalid request body: "+err.Error()))
		return
	}
	if req.Text == "" {
		abortWithError(c, apierrors.NewInvalidRequest("nothing to export"))
		return
	}

	var artifact export.Artifact
	switch req.Format {
	case "", "txt":
		artifact = export.Text(req.Topic, req.Text)
	case "docx":
		var err error
		artifact, err = export.Docx(req.Topic, req.Text)
		if err != nil {
			abortTyped(c, err)
			return
		}
	default:
		abortWithError(c, apierrors.NewInvalidRequest("unknown export format: "+req.Format))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(artifact.Data)))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
