package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseOutcome tells the caller how a model response was parsed.
type ParseOutcome int

// Parse outcomes, from best to worst.
const (
	// ParsedOK means the response was valid JSON after markdown cleanup.
	ParsedOK ParseOutcome = iota
	// ParsedFallback means JSON was recovered by slicing the substring
	// between the outermost delimiters.
	ParsedFallback
	// ParsedFailed means no JSON could be recovered.
	ParsedFailed
)

// String returns the outcome name for logging.
func (o ParseOutcome) String() string {
	switch o {
	case ParsedOK:
		return "ok"
	case ParsedFallback:
		return "fallback"
	default:
		return "failed"
	}
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not
// to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// UnmarshalLenient parses a model response into v. It first attempts a
// strict parse of the cleaned text, then falls back to the substring between
// the first and last JSON delimiter. The returned outcome distinguishes the
// two success paths from failure; on ParsedFailed the error describes the
// strict-parse failure.
func UnmarshalLenient(text string, v any) (ParseOutcome, error) {
	cleaned := CleanJSONBlock(text)

	strictErr := json.Unmarshal([]byte(cleaned), v)
	if strictErr == nil {
		return ParsedOK, nil
	}

	sliced, ok := sliceJSON(cleaned)
	if !ok {
		return ParsedFailed, fmt.Errorf("no JSON found in response: %w", strictErr)
	}
	if err := json.Unmarshal([]byte(sliced), v); err != nil {
		return ParsedFailed, fmt.Errorf("failed to parse recovered JSON: %w", err)
	}
	return ParsedFallback, nil
}

// sliceJSON returns the substring between the first opening delimiter and
// its matching last closing delimiter. Objects and arrays are both handled;
// whichever delimiter appears first wins.
func sliceJSON(text string) (string, bool) {
	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")

	start, closer := objStart, "}"
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}
	if start < 0 {
		return "", false
	}

	end := strings.LastIndex(text, closer)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}
