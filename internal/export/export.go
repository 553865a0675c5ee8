package export

import "strings"

// Artifact is an in-memory encoding of a research report offered for
// download. Built on demand, handed to the response writer, then discarded.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Filename derives a download file name from the topic: spaces become
// underscores, the extension names the format.
func Filename(topic, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	if name == "" {
		name = "research_report"
	}
	return name + ext
}

// Text encodes the report body as a plain-text artifact. Always available.
func Text(topic, body string) Artifact {
	return Artifact{
		Filename:    Filename(topic, ".txt"),
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(body),
	}
}
