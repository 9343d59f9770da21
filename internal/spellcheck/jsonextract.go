package spellcheck

import (
	"regexp"
	"strings"
)

var fencedBlockRE = regexp.MustCompile("(?s)```(?:[jJ][sS][oO][nN])?\\s*(.*?)\\s*```")

// extractJSON pulls a JSON payload out of a model reply that may wrap
// it in prose or a fenced code block. The fallback order is fixed and
// each branch is independently testable: a fenced block wins, then
// the outermost [...] or {...} span, then failure.
func extractJSON(raw string) (string, bool) {
	if m := fencedBlockRE.FindStringSubmatch(raw); m != nil {
		payload := strings.TrimSpace(m[1])
		return payload, payload != ""
	}

	firstBracket := strings.Index(raw, "[")
	firstBrace := strings.Index(raw, "{")

	var open, closing int
	switch {
	case firstBracket != -1 && (firstBrace == -1 || firstBracket < firstBrace):
		open = firstBracket
		closing = strings.LastIndex(raw, "]")
	case firstBrace != -1:
		open = firstBrace
		closing = strings.LastIndex(raw, "}")
	default:
		return "", false
	}

	if closing <= open {
		return "", false
	}
	payload := strings.TrimSpace(raw[open : closing+1])
	return payload, payload != ""
}
