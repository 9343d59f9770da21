package spellcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"proposal-backend/internal/chunk"
	"proposal-backend/internal/extract"
	"proposal-backend/internal/llm"
	"proposal-backend/internal/shared/telemetry"
)

const systemPrompt = `You are an expert proofreader. Analyze the user-provided text chunk for errors. The text may be extracted from a PDF and contain artifacts such as incorrect word breaks or unusual spacing; try to infer the intended meaning. Focus on clear errors in spelling, grammar, punctuation, contextual appropriateness, and repetition. Only consider complete sentences. Ignore formatting errors and snippets that look like table content.

For EACH error you find, return a JSON object with these exact keys:
  "original_snippet_text": string (the EXACT, verbatim substring of the input chunk containing the error - do NOT alter it),
  "suggestion": string (your suggested correction),
  "type": string (e.g. 'spelling', 'grammar', 'punctuation', 'repetition', 'contextual', 'awkward_phrasing', 'ocr_artifact'),
  "start_offset_in_chunk": integer (0-indexed character start of "original_snippet_text" within the chunk),
  "end_offset_in_chunk": integer (0-indexed character end, such that chunk[start_offset_in_chunk:end_offset_in_chunk] == original_snippet_text),
  "explanation": string (brief explanation of the error and the correction)

Example: for the chunk 'Hello teh world' you would return:
[{"original_snippet_text": "teh", "suggestion": "the", "type": "spelling", "start_offset_in_chunk": 6, "end_offset_in_chunk": 9, "explanation": "Misspelling of 'the'."}]

Respond with a single JSON list of these objects. If no errors are found, output an empty JSON list: []. Output ONLY the JSON list, with no other text before or after it.`

// Checker scans document text for spelling/grammar issues chunk by
// chunk. The zero value is not usable; Client and Model must be set.
type Checker struct {
	Client       llm.Client
	Model        string
	ChunkSize    int
	ChunkOverlap int
	Events       telemetry.EventSink
}

// Report is the outcome of scanning one document. Findings are in
// chunk order; duplicates across chunk overlap regions are possible
// and intentionally not collapsed here. Dropped counts candidates
// discarded because their location could not be verified, and
// FailedChunks lists chunk indexes whose model call failed - so
// callers can tell "clean document" apart from "scan did not fully
// run".
type Report struct {
	Findings     []Finding `json:"findings"`
	Dropped      int       `json:"dropped"`
	FailedChunks []int     `json:"failed_chunks,omitempty"`
}

// CheckDocument extracts text from the file at path and scans it.
// Line numbers are suppressed for PDF sources.
func (c *Checker) CheckDocument(ctx context.Context, path string) (Report, error) {
	text, err := extract.Extract(path)
	if err != nil {
		return Report{}, err
	}
	pdfSource := strings.EqualFold(filepath.Ext(path), ".pdf")
	return c.CheckText(ctx, text, pdfSource), nil
}

// CheckText chunks documentText, scans each chunk, and reconciles
// every reported issue to document-absolute offsets. One chunk's
// failure never aborts the rest of the document.
func (c *Checker) CheckText(ctx context.Context, documentText string, pdfSource bool) Report {
	var report Report
	if documentText == "" {
		return report
	}

	fullText := extract.NormalizeNewlines(documentText)
	size, overlap := c.ChunkSize, c.ChunkOverlap
	if size <= 0 {
		size = chunk.DefaultSize
	}
	if overlap <= 0 {
		overlap = chunk.DefaultOverlap
	}

	chunks := chunk.Split(fullText, size, overlap)
	for i, ck := range chunks {
		telemetry.Emit(c.Events, "progress", "scanning chunk", map[string]any{
			"chunk": i + 1, "total": len(chunks),
		})

		located, dropped, err := c.scanChunk(ctx, ck.Text, i)
		report.Dropped += dropped
		if err != nil {
			telemetry.Error("chunk scan failed", map[string]any{"chunk": i, "err": err.Error()})
			report.FailedChunks = append(report.FailedChunks, i)
			continue
		}

		for _, f := range located {
			f.ChunkIndex = i
			f.CharOffsetStartInDoc = ck.StartOffset + f.StartOffsetInChunk
			f.CharOffsetEndInDoc = ck.StartOffset + f.EndOffsetInChunk
			if pdfSource {
				// Multi-column and reflow artifacts make PDF line
				// numbers a misleading guess.
				f.LineNumber = -1
				f.LineWithError = nil
			} else {
				line, number := lineAt(fullText, f.CharOffsetStartInDoc)
				f.LineNumber = number
				f.LineWithError = &line
			}
			report.Findings = append(report.Findings, f)
		}
	}
	return report
}

// scanChunk asks the model for issues in one chunk and returns the
// location-verified findings plus the number of unlocatable ones it
// had to drop. A gateway error is returned to the caller; a reply
// that cannot be parsed yields zero findings.
func (c *Checker) scanChunk(ctx context.Context, chunkText string, index int) ([]Finding, int, error) {
	if strings.TrimSpace(chunkText) == "" {
		return nil, 0, nil
	}

	raw, err := c.Client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: chunkText},
	}, c.Model)
	if err != nil {
		return nil, 0, fmt.Errorf("scan chunk %d: %w", index, err)
	}

	payload, ok := extractJSON(raw)
	if !ok {
		telemetry.Warn("no JSON payload in model reply", map[string]any{"chunk": index, "raw": truncate(raw, 500)})
		return nil, 0, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		// A single object instead of a list still counts.
		var single json.RawMessage
		if err2 := json.Unmarshal([]byte(payload), &single); err2 != nil || !strings.HasPrefix(strings.TrimSpace(payload), "{") {
			telemetry.Warn("model reply is not valid JSON", map[string]any{"chunk": index, "err": err.Error()})
			return nil, 0, nil
		}
		items = []json.RawMessage{single}
	}

	var findings []Finding
	dropped := 0
	for _, item := range items {
		var cand candidate
		if err := json.Unmarshal(item, &cand); err != nil || !cand.complete() {
			telemetry.Warn("skipping malformed finding", map[string]any{"chunk": index, "raw": truncate(string(item), 200)})
			continue
		}

		claimedStart, claimedEnd := int(*cand.Start), int(*cand.End)
		start, end, ok := Locate(chunkText, claimedStart, claimedEnd, *cand.Snippet)
		if !ok {
			telemetry.Warn("dropping unlocatable finding", map[string]any{
				"chunk": index, "snippet": truncate(*cand.Snippet, 120),
				"claimed_start": claimedStart, "claimed_end": claimedEnd,
			})
			dropped++
			continue
		}
		if start != claimedStart {
			telemetry.Info("corrected model offset", map[string]any{
				"chunk": index, "claimed": claimedStart, "actual": start,
			})
		}

		findings = append(findings, Finding{
			OriginalSnippet:    *cand.Snippet,
			Suggestion:         *cand.Suggestion,
			Type:               *cand.Type,
			Explanation:        cand.Explanation,
			StartOffsetInChunk: start,
			EndOffsetInChunk:   end,
		})
	}
	return findings, dropped, nil
}

// lineAt returns the trimmed text and 1-based number of the line
// containing the absolute byte offset.
func lineAt(fullText string, offset int) (string, int) {
	if offset < 0 || offset > len(fullText) {
		return "", -1
	}
	lineStart := strings.LastIndex(fullText[:offset], "\n") + 1
	lineEnd := strings.Index(fullText[offset:], "\n")
	if lineEnd == -1 {
		lineEnd = len(fullText)
	} else {
		lineEnd += offset
	}
	number := strings.Count(fullText[:offset], "\n") + 1
	return strings.TrimSpace(fullText[lineStart:lineEnd]), number
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
