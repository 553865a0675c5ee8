package research

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractText pulls the generated text out of whatever response shape the
// upstream returned. The shape has changed between API versions, so the
// lookup is ordered and defensive: a top-level text field, then a top-level
// content field, then the canonical candidates path, and as a last resort
// the raw body itself. Extraction never fails; a shape change degrades to an
// ugly-but-visible rendering instead of a crash.
func ExtractText(body []byte) string {
	if text := gjson.GetBytes(body, "text"); text.Type == gjson.String && text.String() != "" {
		return text.String()
	}
	if content := gjson.GetBytes(body, "content"); content.Type == gjson.String && content.String() != "" {
		return content.String()
	}
	if candidate := candidateText(body); candidate != "" {
		return candidate
	}
	return string(body)
}

// candidateText joins the text parts of the first candidate, the shape
// generateContent responses actually have today.
func candidateText(body []byte) string {
	parts := gjson.GetBytes(body, "candidates.0.content.parts")
	if !parts.IsArray() {
		return ""
	}
	var sb strings.Builder
	parts.ForEach(func(_, part gjson.Result) bool {
		sb.WriteString(part.Get("text").String())
		return true
	})
	return sb.String()
}
