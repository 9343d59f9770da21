package spellcheck

import (
	"strings"
	"testing"
)

func TestLocateDirectMatch(t *testing.T) {
	chunk := "Hello teh world"
	start, end, ok := Locate(chunk, 6, 9, "teh")
	if !ok {
		t.Fatal("expected direct match to be accepted")
	}
	if start != 6 || end != 9 {
		t.Fatalf("got (%d,%d), want (6,9)", start, end)
	}
	if chunk[start:end] != "teh" {
		t.Fatalf("chunk[%d:%d] = %q", start, end, chunk[start:end])
	}
}

func TestLocateWindowedCorrection(t *testing.T) {
	chunk := "AAAA teh BBBB"
	// Claimed offsets are off by two; the snippet is nearby.
	start, end, ok := Locate(chunk, 7, 10, "teh")
	if !ok {
		t.Fatal("expected windowed search to find snippet")
	}
	if start != 5 || end != 8 {
		t.Fatalf("got (%d,%d), want (5,8)", start, end)
	}
	if chunk[start:end] != "teh" {
		t.Fatalf("chunk[%d:%d] = %q", start, end, chunk[start:end])
	}
}

func TestLocateFullChunkFallback(t *testing.T) {
	// Snippet sits far outside the +-50 byte window around the claim.
	chunk := strings.Repeat("x", 200) + " teh " + strings.Repeat("y", 20)
	start, end, ok := Locate(chunk, 0, 3, "teh")
	if !ok {
		t.Fatal("expected full-chunk search to find snippet")
	}
	if chunk[start:end] != "teh" {
		t.Fatalf("chunk[%d:%d] = %q", start, end, chunk[start:end])
	}
	if start != 201 {
		t.Fatalf("start = %d, want 201", start)
	}
}

func TestLocateUnlocatable(t *testing.T) {
	if _, _, ok := Locate("completely different text", 3, 8, "absent"); ok {
		t.Fatal("expected unlocatable snippet to be rejected")
	}
}

func TestLocateEmptySnippet(t *testing.T) {
	if _, _, ok := Locate("some text", 0, 0, ""); ok {
		t.Fatal("empty snippet must never locate")
	}
}

func TestLocateClaimedOffsetsOutOfRange(t *testing.T) {
	chunk := "short chunk with teh typo"
	start, end, ok := Locate(chunk, 5000, 5003, "teh")
	if !ok {
		t.Fatal("expected fallback search despite absurd claim")
	}
	if chunk[start:end] != "teh" {
		t.Fatalf("chunk[%d:%d] = %q", start, end, chunk[start:end])
	}
}

func TestLocateNegativeClaim(t *testing.T) {
	chunk := "teh beginning"
	start, end, ok := Locate(chunk, -4, -1, "teh")
	if !ok {
		t.Fatal("expected windowed search to handle negative claim")
	}
	if start != 0 || end != 3 {
		t.Fatalf("got (%d,%d), want (0,3)", start, end)
	}
}
