package discovery

import (
	"context"
	"strings"

	"gemini-research-go/internal/constants"
	up "gemini-research-go/internal/upstream/gemini"
	"github.com/tidwall/gjson"
	log "github.com/sirupsen/logrus"
)

// Summary describes one raw directory response well enough to debug API
// version drift without dumping the full body: element count and a sample for
// arrays, the key list for objects, a truncated rendering otherwise.
type Summary struct {
	Type   string   `json:"type"`
	Len    int      `json:"len,omitempty"`
	Sample string   `json:"sample,omitempty"`
	Keys   []string `json:"keys,omitempty"`
	Repr   string   `json:"repr,omitempty"`
}

// ProbeReport is the return value of the diagnostic probe, rendered by the
// presentation surface's diagnostics panel.
type ProbeReport struct {
	Attempts []CallAttempt `json:"attempts"`
	Models   []string      `json:"models"`
}

// Probe re-runs every available strategy without stopping at the first
// success and summarizes each outcome. It exists purely for operator
// debugging; the primary flow never depends on it. The normalized set is
// computed from the first successful response, mirroring what Resolve would
// have surfaced.
func (r *Resolver) Probe(ctx context.Context, apiKey string) (*ProbeReport, error) {
	client, err := up.New(r.cfg, apiKey)
	if err != nil {
		return nil, err
	}

	report := &ProbeReport{Attempts: []CallAttempt{}, Models: []string{}}
	var firstSuccess []byte
	for _, strategy := range r.strategies {
		if !strategy.Available(client) {
			continue
		}
		raw, listErr := strategy.List(ctx, client)
		if listErr != nil {
			report.Attempts = append(report.Attempts, failedAttempt(strategy.Label(), listErr))
			continue
		}
		summary := Summarize(raw)
		report.Attempts = append(report.Attempts, CallAttempt{Label: strategy.Label(), OK: true, Summary: &summary})
		if firstSuccess == nil && len(raw) > 0 {
			firstSuccess = raw
		}
	}
	if firstSuccess != nil {
		if models := NormalizeModelIDs(firstSuccess); models != nil {
			report.Models = models
		}
	}

	log.WithFields(log.Fields{
		"component": "model_discovery",
		"attempts":  len(report.Attempts),
		"models":    len(report.Models),
	}).Debug("model listing probe finished")
	return report, nil
}

const summarySampleEntries = 5

// Summarize builds a Summary for a raw response body.
func Summarize(raw []byte) Summary {
	parsed := gjson.ParseBytes(raw)
	switch {
	case parsed.IsArray():
		arr := parsed.Array()
		sample := arr
		if len(sample) > summarySampleEntries {
			sample = sample[:summarySampleEntries]
		}
		parts := make([]string, 0, len(sample))
		for _, item := range sample {
			parts = append(parts, item.Raw)
		}
		return Summary{Type: "array", Len: len(arr), Sample: "[" + strings.Join(parts, ",") + "]"}
	case parsed.IsObject():
		var keys []string
		parsed.ForEach(func(key, _ gjson.Result) bool {
			keys = append(keys, key.String())
			return true
		})
		return Summary{Type: "object", Keys: keys}
	default:
		repr := strings.TrimSpace(string(raw))
		if len(repr) > constants.DiagnosticExcerptBytes {
			repr = repr[:constants.DiagnosticExcerptBytes] + "..."
		}
		return Summary{Type: "scalar", Repr: repr}
	}
}
