package research

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// The report structure is fixed: seven sections, simple English. Changing
// this template changes every report, so it stays in one place.
const promptTemplate = `You are a professional academic research assistant.

Write a detailed research report on:
%q

Include:
1. Introduction
2. Background
3. Key Concepts
4. Real-world Examples
5. Advantages & Limitations
6. Future Scope
7. Conclusion

Use simple English.`

// BuildPrompt renders the report prompt for a topic.
func BuildPrompt(topic string) string {
	return fmt.Sprintf(promptTemplate, topic)
}

// payloadTemplate is the canned generateContent request body; the prompt text
// is injected into it per request.
var payloadTemplate = []byte(`{"contents":[{"role":"user","parts":[{"text":""}]}]}`)

// buildPayload produces the request body for one generation call.
func buildPayload(prompt string) ([]byte, error) {
	return sjson.SetBytes(payloadTemplate, "contents.0.parts.0.text", prompt)
}
