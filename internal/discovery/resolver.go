package discovery

import (
	"context"
	"errors"

	"gemini-research-go/internal/config"
	up "gemini-research-go/internal/upstream/gemini"
	log "github.com/sirupsen/logrus"
)

// CallAttempt records one tried listing strategy for the diagnostics panel.
// Attempts are display-only and never retried programmatically.
type CallAttempt struct {
	Label   string   `json:"label"`
	OK      bool     `json:"ok"`
	Summary *Summary `json:"summary,omitempty"`
	Error   string   `json:"error,omitempty"`
	Trace   string   `json:"trace,omitempty"`
}

// Resolver produces a best-effort set of usable model identifiers from an
// upstream whose exact listing surface is not guaranteed.
type Resolver struct {
	cfg        *config.Config
	strategies []ListingStrategy
}

// NewResolver builds a resolver with the default strategy order.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg, strategies: defaultStrategies()}
}

// Resolve lists models with the given credential. The error return is
// non-nil only when the client cannot be constructed; every downstream
// failure degrades to an empty model set plus the attempt trace.
//
// Strategies are tried in order: unavailable ones are skipped without a
// record, failing or empty-bodied ones record a failed attempt, and the
// first strategy returning a non-empty response wins; nothing is tried
// after a success, and the
// winning response is taken as the directory even when normalization finds
// no identifiers in it.
func (r *Resolver) Resolve(ctx context.Context, apiKey string) ([]string, []CallAttempt, error) {
	client, err := up.New(r.cfg, apiKey)
	if err != nil {
		return nil, nil, err
	}

	var attempts []CallAttempt
	for _, strategy := range r.strategies {
		if !strategy.Available(client) {
			continue
		}
		raw, listErr := strategy.List(ctx, client)
		if listErr != nil {
			attempts = append(attempts, failedAttempt(strategy.Label(), listErr))
			continue
		}
		if len(raw) == 0 {
			// Executed but answered with nothing; the trace must account
			// for every strategy actually tried.
			attempts = append(attempts, CallAttempt{Label: strategy.Label(), Error: "empty response body"})
			continue
		}
		summary := Summarize(raw)
		attempts = append(attempts, CallAttempt{Label: strategy.Label(), OK: true, Summary: &summary})
		models := NormalizeModelIDs(raw)
		log.WithFields(log.Fields{
			"component": "model_discovery",
			"strategy":  strategy.Label(),
			"models":    len(models),
		}).Info("model listing succeeded")
		return models, attempts, nil
	}

	log.WithFields(log.Fields{
		"component": "model_discovery",
		"attempts":  len(attempts),
	}).Warn("no listing strategy succeeded, returning empty model set")
	return nil, attempts, nil
}

func failedAttempt(label string, err error) CallAttempt {
	attempt := CallAttempt{Label: label, Error: err.Error()}
	var statusErr *up.StatusError
	if errors.As(err, &statusErr) {
		attempt.Trace = statusErr.StatusLine + "\n" + statusErr.Excerpt()
	}
	return attempt
}
