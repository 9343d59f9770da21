package artifact

import (
	"context"
	"io"
)

// Store defines the contract for archiving and retrieving analysis
// report documents by storage key.
type Store interface {
	Save(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// RunKey returns the canonical storage key for a run's report.
func RunKey(runID string) string {
	return "runs/" + runID + ".json"
}
