package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"

	"gemini-research-go/internal/apierrors"
)

// A .docx file is a zip container with a fixed skeleton. The document here is
// deliberately minimal: content types, the package relationship pointing at
// the document part, and the document itself. The topic becomes a heading
// and the body splits into paragraphs on blank-line boundaries.

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `</w:body></w:document>`

// Docx encodes the report as a word-processor document. Failures are
// reported as ExportUnavailable so the caller degrades to the text export
// with a visible notice instead of failing the session.
func Docx(topic, body string) (Artifact, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name, content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(topic, body)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return Artifact{}, apierrors.NewExportUnavailable("document export failed: " + err.Error())
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return Artifact{}, apierrors.NewExportUnavailable("document export failed: " + err.Error())
		}
	}
	if err := zw.Close(); err != nil {
		return Artifact{}, apierrors.NewExportUnavailable("document export failed: " + err.Error())
	}

	return Artifact{
		Filename:    Filename(topic, ".docx"),
		ContentType: docxContentType,
		Data:        buf.Bytes(),
	}, nil
}

func documentXML(topic, body string) string {
	var sb strings.Builder
	sb.WriteString(documentHeader)
	sb.WriteString(headingXML(topic))
	for _, block := range SplitParagraphs(body) {
		sb.WriteString(paragraphXML(block))
	}
	sb.WriteString(documentFooter)
	return sb.String()
}

// SplitParagraphs splits a report body on blank-line boundaries. Each
// non-empty trimmed segment becomes one paragraph; blank segments produce
// nothing.
func SplitParagraphs(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(body, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}

func headingXML(topic string) string {
	// Direct run formatting instead of a style reference keeps the package
	// down to its three fixed parts.
	return `<w:p><w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:pPr>` +
		`<w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr><w:t xml:space="preserve">` +
		escapeXML(topic) + `</w:t></w:r></w:p>`
}

func paragraphXML(text string) string {
	var sb strings.Builder
	sb.WriteString(`<w:p><w:r>`)
	// Hard line breaks inside a paragraph survive as <w:br/> elements.
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString(`<w:br/>`)
		}
		sb.WriteString(`<w:t xml:space="preserve">`)
		sb.WriteString(escapeXML(line))
		sb.WriteString(`</w:t>`)
	}
	sb.WriteString(`</w:r></w:p>`)
	return sb.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
