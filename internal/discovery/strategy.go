package discovery

import (
	"context"

	up "gemini-research-go/internal/upstream/gemini"
)

// ListingStrategy is one known way to ask the upstream for its model
// directory. The API has renamed and moved this call between versions, so the
// resolver carries an explicit ordered list of strategies instead of probing
// the client's surface at runtime.
type ListingStrategy interface {
	// Label names the strategy in diagnostics.
	Label() string
	// Available reports whether the strategy applies to this client at all.
	// Unavailable strategies are skipped without an attempt record.
	Available(c *up.Client) bool
	// List performs the call and returns the raw directory response.
	List(ctx context.Context, c *up.Client) ([]byte, error)
}

type endpointStrategy struct {
	label       string
	path        string
	needsCompat bool
}

func (s endpointStrategy) Label() string { return s.label }

func (s endpointStrategy) Available(c *up.Client) bool {
	if s.needsCompat {
		return c.OpenAICompatEnabled()
	}
	return true
}

func (s endpointStrategy) List(ctx context.Context, c *up.Client) ([]byte, error) {
	return c.GetJSON(ctx, s.path)
}

// defaultStrategies returns the listing strategies in preference order.
// First success wins; the order matters because the v1beta collection is the
// richest and the OpenAI-compatible one only exists on newer deployments.
func defaultStrategies() []ListingStrategy {
	return []ListingStrategy{
		endpointStrategy{label: "GET /v1beta/models", path: up.PathModelsV1Beta},
		endpointStrategy{label: "GET /v1/models", path: up.PathModelsV1},
		endpointStrategy{label: "GET /v1beta/openai/models", path: up.PathModelsOpenAI, needsCompat: true},
	}
}
