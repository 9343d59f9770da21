// Package spellcheck scans document text for spelling and grammar
// issues by sending overlapping chunks to a language model, then
// anchors every reported issue to a verified location in the source.
package spellcheck

import (
	"strconv"
	"strings"
)

// Finding is a single reported issue anchored to a verified location.
// Offsets are byte offsets; the chunk-relative pair always satisfies
// chunkText[StartOffsetInChunk:EndOffsetInChunk] == OriginalSnippet.
// LineNumber is 1-based and -1 when the source layout makes line
// numbers meaningless (PDF reflow); LineWithError is nil in that case.
type Finding struct {
	OriginalSnippet      string  `json:"original_snippet"`
	Suggestion           string  `json:"suggestion"`
	Type                 string  `json:"type"`
	Explanation          string  `json:"explanation,omitempty"`
	StartOffsetInChunk   int     `json:"start_offset_in_chunk"`
	EndOffsetInChunk     int     `json:"end_offset_in_chunk"`
	CharOffsetStartInDoc int     `json:"char_offset_start_in_doc"`
	CharOffsetEndInDoc   int     `json:"char_offset_end_in_doc"`
	LineNumber           int     `json:"line_number"`
	LineWithError        *string `json:"line_with_error"`
	ChunkIndex           int     `json:"chunk_index"`
}

// candidate is one issue as reported by the model, before any
// location verification. Pointer fields distinguish "absent" from
// zero values so malformed entries can be skipped.
type candidate struct {
	Snippet     *string  `json:"original_snippet_text"`
	Suggestion  *string  `json:"suggestion"`
	Type        *string  `json:"type"`
	Start       *flexInt `json:"start_offset_in_chunk"`
	End         *flexInt `json:"end_offset_in_chunk"`
	Explanation string   `json:"explanation"`
}

func (c candidate) complete() bool {
	return c.Snippet != nil && c.Suggestion != nil && c.Type != nil && c.Start != nil && c.End != nil
}

// flexInt tolerates models quoting offsets ("6") or emitting floats
// (6.0) where an integer is mandated.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(data)), `"`))
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*f = flexInt(int(val))
	return nil
}
