// Package chunk splits normalized document text into bounded,
// overlapping slices sized for a model's practical input budget.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// Defaults match the sizing the spell checker was tuned with.
const (
	DefaultSize    = 6000
	DefaultOverlap = 600
)

// Chunk is a contiguous slice of the source text. StartOffset is the
// 0-based byte offset of the slice's untrimmed start within the
// source; StartLine is the 1-based line number at that offset. Text
// is trimmed and never empty.
type Chunk struct {
	Text        string
	StartOffset int
	StartLine   int
}

// Split walks text left to right producing chunks of at most size
// bytes that overlap by roughly overlap bytes. When a window does not
// reach end-of-text it is shortened to the last sentence boundary
// (". ") inside it, or failing that the last space, so errors are not
// cut mid-sentence or mid-word. Chunks are emitted in strictly
// increasing StartOffset order, and the cursor always advances by at
// least one byte, so Split terminates for any overlap, including
// overlap >= size.
//
// The input must already use \n line endings (see
// extract.NormalizeNewlines); offsets refer to text as given.
func Split(text string, size, overlap int) []Chunk {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 {
		overlap = 0
	}

	var chunks []Chunk
	cursor := 0
	line := 1
	lineCounted := 0
	total := len(text)

	for cursor < total {
		end := cursor + size
		if end > total {
			end = total
		}
		if end < total {
			end = seekBreak(text, cursor, end)
		}

		// Keep the line counter running instead of recounting
		// from the start of the document each iteration.
		line += strings.Count(text[lineCounted:cursor], "\n")
		lineCounted = cursor

		if content := strings.TrimSpace(text[cursor:end]); content != "" {
			chunks = append(chunks, Chunk{
				Text:        content,
				StartOffset: cursor,
				StartLine:   line,
			})
		}

		if end == total {
			break
		}
		next := end - overlap
		if next <= cursor {
			next = cursor + 1
		}
		cursor = next
	}
	return chunks
}

// seekBreak shortens the window [start, end) to a natural boundary:
// the last ". " whose period still fits in the window, else the last
// space, else a rune boundary at or before end.
func seekBreak(text string, start, end int) int {
	searchEnd := end + 1
	if searchEnd > len(text) {
		searchEnd = len(text)
	}
	if p := strings.LastIndex(text[start:searchEnd], ". "); p > 0 {
		return start + p + 1
	}
	if p := strings.LastIndex(text[start:end], " "); p > 0 {
		return start + p
	}
	for end > start+1 && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}
