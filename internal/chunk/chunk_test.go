package chunk

import (
	"strings"
	"testing"
)

func TestSplitEmptyInput(t *testing.T) {
	if got := Split("", 100, 10); got != nil {
		t.Fatalf("expected no chunks for empty input, got %d", len(got))
	}
}

func TestSplitSingleChunk(t *testing.T) {
	text := "A short document that fits in one chunk."
	chunks := Split(text, 1000, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Fatalf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].StartOffset != 0 || chunks[0].StartLine != 1 {
		t.Fatalf("chunk start = (%d, line %d)", chunks[0].StartOffset, chunks[0].StartLine)
	}
}

func TestSplitPrefersSentenceBoundary(t *testing.T) {
	text := "First sentence here. Second sentence is a bit longer and overflows."
	chunks := Split(text, 30, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0].Text, "First sentence here.") {
		t.Fatalf("first chunk should end at sentence boundary, got %q", chunks[0].Text)
	}
}

func TestSplitFallsBackToSpace(t *testing.T) {
	text := "wordone wordtwo wordthree wordfour wordfive"
	chunks := Split(text, 20, 0)
	for _, c := range chunks {
		if strings.Contains(c.Text, " ") && (strings.HasPrefix(c.Text, " ") || strings.HasSuffix(c.Text, " ")) {
			t.Fatalf("chunk not trimmed: %q", c.Text)
		}
	}
	// No chunk should cut a word in half when spaces are available.
	valid := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		valid[w] = true
	}
	for _, c := range chunks {
		for _, w := range strings.Fields(c.Text) {
			if !valid[w] {
				t.Fatalf("chunk split mid-word, produced %q", w)
			}
		}
	}
}

func TestSplitStrictlyIncreasingOffsets(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)
	chunks := Split(text, 100, 20)
	prev := -1
	for i, c := range chunks {
		if c.StartOffset <= prev {
			t.Fatalf("chunk %d offset %d not greater than previous %d", i, c.StartOffset, prev)
		}
		prev = c.StartOffset
	}
}

func TestSplitTerminatesWithOverlapLargerThanSize(t *testing.T) {
	text := strings.Repeat("abcdefghij ", 30)
	done := make(chan []Chunk, 1)
	go func() { done <- Split(text, 10, 50) }()
	chunks := <-done

	prev := -1
	for i, c := range chunks {
		if c.StartOffset <= prev {
			t.Fatalf("chunk %d offset %d not increasing (prev %d)", i, c.StartOffset, prev)
		}
		prev = c.StartOffset
	}
}

func TestSplitCoverage(t *testing.T) {
	text := strings.Repeat("Sentence number one is right here. ", 40)
	size, overlap := 120, 30
	chunks := Split(text, size, overlap)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	// Each chunk window must begin no later than the previous window's
	// end: a gap larger than the overlap would hide text from every
	// chunk.
	prevEnd := 0
	for i, c := range chunks {
		if c.StartOffset > prevEnd {
			t.Fatalf("chunk %d leaves gap: starts at %d, previous window ended at %d", i, c.StartOffset, prevEnd)
		}
		end := c.StartOffset + len(c.Text)
		if end > prevEnd {
			prevEnd = end
		}
	}
	if total := len(text); prevEnd < total-overlap {
		t.Fatalf("chunks stop at %d, text has %d bytes", prevEnd, total)
	}
}

func TestSplitLineNumbers(t *testing.T) {
	text := "line one is here.\nline two is here.\nline three is here.\nline four."
	chunks := Split(text, 40, 5)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		want := strings.Count(text[:c.StartOffset], "\n") + 1
		if c.StartLine != want {
			t.Fatalf("chunk at offset %d: line %d, want %d", c.StartOffset, c.StartLine, want)
		}
	}
}

func TestSplitOffsetsAddressSourceText(t *testing.T) {
	text := strings.Repeat("Alpha beta gamma delta epsilon. ", 20)
	for _, c := range Split(text, 90, 15) {
		window := text[c.StartOffset:]
		if !strings.HasPrefix(strings.TrimSpace(window), c.Text[:min(len(c.Text), 20)]) {
			t.Fatalf("offset %d does not address chunk text %q", c.StartOffset, c.Text)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
