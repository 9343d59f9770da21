package spellcheck

import "strings"

// locateWindow is how far around a claimed offset the windowed search
// looks before falling back to scanning the whole chunk.
const locateWindow = 50

// Locate verifies or recovers the position of snippet inside
// chunkText given the (possibly wrong) offsets the model claimed.
// Models transcribe snippets faithfully but are unreliable at offset
// arithmetic, so the claimed pair is only a hint:
//
//  1. if chunkText[claimedStart:claimedEnd] equals snippet, the claim
//     is accepted as-is;
//  2. otherwise snippet is searched for within ±50 bytes of the
//     claimed start;
//  3. otherwise the whole chunk is searched;
//  4. otherwise ok is false and the finding must be dropped - a
//     fabricated location is worse than no finding.
//
// On success chunkText[start:end] == snippet holds.
func Locate(chunkText string, claimedStart, claimedEnd int, snippet string) (start, end int, ok bool) {
	if snippet == "" {
		return 0, 0, false
	}

	if claimedStart >= 0 && claimedEnd > claimedStart && claimedEnd <= len(chunkText) &&
		chunkText[claimedStart:claimedEnd] == snippet {
		return claimedStart, claimedEnd, true
	}

	lo := claimedStart - locateWindow
	if lo < 0 {
		lo = 0
	}
	hi := claimedStart + len(snippet) + locateWindow
	if hi > len(chunkText) {
		hi = len(chunkText)
	}
	if lo < hi {
		if p := strings.Index(chunkText[lo:hi], snippet); p != -1 {
			start = lo + p
			return start, start + len(snippet), true
		}
	}

	if p := strings.Index(chunkText, snippet); p != -1 {
		return p, p + len(snippet), true
	}

	return 0, 0, false
}
