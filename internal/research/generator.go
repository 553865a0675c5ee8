package research

import (
	"context"
	"errors"
	"strings"
	"time"

	"gemini-research-go/internal/apierrors"
	"gemini-research-go/internal/config"
	up "gemini-research-go/internal/upstream/gemini"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Request is one research invocation: a topic and a previously-discovered
// model identifier. Constructed fresh per call, never persisted.
type Request struct {
	Topic string
	Model string
}

// Result is the generated report body plus an ID for log correlation. Held
// only long enough to render and export.
type Result struct {
	ReportID string
	Topic    string
	Model    string
	Text     string
}

// Generator turns a Request into a Result with a single generation round
// trip. No retry is attempted for any failure category.
type Generator struct {
	cfg *config.Config
}

// NewGenerator builds a report generator.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate runs one generation call. Errors are always *apierrors.Error:
// construction failures, rejected input, or one of the classified generation
// categories.
func (g *Generator) Generate(ctx context.Context, apiKey string, req Request) (*Result, error) {
	topic := strings.TrimSpace(req.Topic)
	model := strings.TrimSpace(req.Model)
	if topic == "" {
		return nil, apierrors.NewInvalidRequest("research topic is empty")
	}
	// The UI's "no selection" sentinel is parenthesized; reject it along
	// with a missing model before spending a network call.
	if model == "" || strings.HasPrefix(model, "(") {
		return nil, apierrors.NewInvalidRequest("choose a model from the discovered list first")
	}

	client, err := up.New(g.cfg, apiKey)
	if err != nil {
		return nil, err
	}

	payload, err := buildPayload(BuildPrompt(topic))
	if err != nil {
		return nil, apierrors.NewInvalidRequest("could not build request payload: " + err.Error())
	}

	start := time.Now()
	body, err := client.GenerateContent(ctx, model, payload)
	if err != nil {
		classified := classifyCallError(err)
		log.WithFields(log.Fields{
			"component":   "report_generator",
			"model":       model,
			"category":    string(classified.Category),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Warn("generation call failed")
		return nil, classified
	}

	result := &Result{
		ReportID: uuid.NewString(),
		Topic:    topic,
		Model:    model,
		Text:     ExtractText(body),
	}
	log.WithFields(log.Fields{
		"component":   "report_generator",
		"report_id":   result.ReportID,
		"model":       model,
		"chars":       len(result.Text),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("research report generated")
	return result, nil
}

// classifyCallError folds upstream detail into a matchable message and runs
// the ordered classification rules.
func classifyCallError(err error) *apierrors.Error {
	var statusErr *up.StatusError
	if errors.As(err, &statusErr) {
		return apierrors.ClassifyGeneration(statusErr.Error(), statusErr.StatusLine+"\n"+statusErr.Excerpt())
	}
	return apierrors.ClassifyGeneration(err.Error(), err.Error())
}
