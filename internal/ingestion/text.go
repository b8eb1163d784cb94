// Package ingestion extracts plain text from uploaded resume documents.
// Extraction is best effort: a malformed document yields empty text, not a
// pipeline failure, and the application still enters the pipeline with a
// fallback profile.
package ingestion

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Content types accepted at intake.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

// ExtractText converts an uploaded document to plain text. PDF and plain
// text are supported; anything else is an error. The result may be empty
// for image-only or malformed documents.
func ExtractText(data []byte, contentType string) (string, error) {
	switch contentType {
	case ContentTypePDF:
		text, err := extractPDFText(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract PDF text: %w", err)
		}
		return CleanText(text), nil
	case ContentTypeText:
		return CleanText(string(data)), nil
	default:
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// CleanText normalizes extracted text: unified line endings, trimmed lines,
// at most one blank line in a row.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
