package apierrors

import "strings"

// Generation failures are distinguished by message-substring sniffing because
// the upstream API does not expose stable machine-readable codes across
// versions. The rules below are evaluated top-to-bottom against the
// lowercased message; the first rule with any matching substring wins and
// everything else falls through to the generic category. Appending a rule is
// the supported way to add a finer category.
//
// The coupling to the upstream's wording is deliberate and fragile; callers
// fold the HTTP status line and the structured error.status field (for
// example RESOURCE_EXHAUSTED) into the message before classification so the
// substrings match even when the prose changes.
type generationRule struct {
	substrings []string
	category   Category
	hint       string
}

var generationRules = []generationRule{
	{
		substrings: []string{"not found", "not supported for generatecontent"},
		category:   CategoryModelUnsupported,
		hint: "The selected model does not support content generation on this API version. " +
			"Re-run model discovery and pick a text-generation-capable model.",
	},
	{
		substrings: []string{"resource_exhausted", "quota", "429"},
		category:   CategoryQuotaExceeded,
		hint: "Quota exhausted or insufficient billing for this model. " +
			"Check billing and quota for generative requests.",
	},
}

// ClassifyGeneration maps an upstream generation failure to a typed error.
// The original message is carried verbatim; trace holds operator detail.
func ClassifyGeneration(message, trace string) *Error {
	lower := strings.ToLower(message)
	for _, rule := range generationRules {
		for _, sub := range rule.substrings {
			if strings.Contains(lower, sub) {
				return &Error{
					Category: rule.category,
					Message:  message,
					Hint:     rule.hint,
					Trace:    trace,
				}
			}
		}
	}
	return &Error{
		Category: CategoryGenerationFailed,
		Message:  message,
		Hint:     "Unexpected error calling the model. The diagnostic trace below may help.",
		Trace:    trace,
	}
}
