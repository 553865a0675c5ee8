package gemini

import "strings"

// API paths for the generative language REST surface. Model listing exists on
// several versioned surfaces depending on API generation; the resolver probes
// them in order.
const (
	// PathModelsV1Beta is the primary model collection.
	PathModelsV1Beta = "/v1beta/models?pageSize=200"

	// PathModelsV1 is the stable-version model collection.
	PathModelsV1 = "/v1/models?pageSize=200"

	// PathModelsOpenAI is the OpenAI-compatible listing, which answers with
	// a {"data": [{"id": ...}]} envelope instead of {"models": [...]}.
	PathModelsOpenAI = "/v1beta/openai/models"
)

// GenerateContentPath builds the generateContent action path for a model.
// Listing surfaces return path-like names ("models/gemini-pro"); bare
// identifiers are accepted too.
func GenerateContentPath(model string) string {
	model = strings.TrimSpace(strings.Trim(model, "/"))
	if !strings.Contains(model, "/") {
		model = "models/" + model
	}
	return "/v1beta/" + model + ":generateContent"
}
