package gemini

import (
	"context"

	"github.com/tidwall/gjson"
)

// GenerateContent sends one non-streaming generation request for the model
// and returns the raw response body. Classification of failures is the
// caller's concern; this layer only preserves the upstream's wording.
func (c *Client) GenerateContent(ctx context.Context, model string, payload []byte) ([]byte, error) {
	return c.PostJSON(ctx, GenerateContentPath(model), payload)
}

// upstreamMessage pulls the human-readable message out of an upstream error
// body. The structured status field (e.g. RESOURCE_EXHAUSTED) is appended
// when present so substring classification can match it even if the prose
// changes between API versions.
func upstreamMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	msg := gjson.GetBytes(body, "error.message").String()
	status := gjson.GetBytes(body, "error.status").String()
	switch {
	case msg != "" && status != "":
		return msg + " (" + status + ")"
	case msg != "":
		return msg
	case status != "":
		return status
	}
	return ""
}
