package extract

import (
	"regexp"
	"strings"
)

var (
	hyphenBreakRE = regexp.MustCompile(`(\w)-(?:\r\n|\r|\n)(\w)`)
	newlineRunRE  = regexp.MustCompile(`(?:\r\n|\r|\n)+`)
	innerSpaceRE  = regexp.MustCompile("[ \t ]+")
	blankLinesRE  = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw extracted text into the canonical form the
// rest of the pipeline operates on. The same steps apply regardless
// of source format, so identical input bytes always yield identical
// output:
//
//  1. words split by a hyphen at a line break are rejoined,
//  2. any run of line breaks collapses to a single \n,
//  3. per line, runs of space/tab/NBSP collapse to one space and
//     line ends are trimmed,
//  4. three or more consecutive newlines collapse to two,
//  5. the whole result is trimmed.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := hyphenBreakRE.ReplaceAllString(raw, "$1$2")
	text = newlineRunRE.ReplaceAllString(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerSpaceRE.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")

	text = blankLinesRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// NormalizeNewlines converts \r\n and bare \r to \n without touching
// anything else. Offset-carrying consumers (the chunker and finding
// locator) require this form so byte offsets stay stable.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
