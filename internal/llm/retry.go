package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"proposal-backend/internal/shared/metrics"
	"proposal-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

type retryingClient struct {
	base Client
}

// WithRetry wraps base so a single transient failure (timeout, reset,
// 5xx) is retried once after a short delay. Non-transient errors pass
// through unchanged.
func WithRetry(base Client) Client {
	if base == nil {
		return nil
	}
	return retryingClient{base: base}
}

func (r retryingClient) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	metrics.IncLLMCall()
	resp, err := r.base.Complete(ctx, messages, model)
	if err == nil {
		return resp, nil
	}
	if !shouldRetry(err) {
		metrics.IncLLMFailure()
		return resp, err
	}

	metrics.IncLLMRetry()
	telemetry.Warn("llm retry", map[string]any{"model": model, "err": err.Error()})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	resp, err = r.base.Complete(ctx, messages, model)
	if err != nil {
		metrics.IncLLMFailure()
	}
	return resp, err
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "client.timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "unexpected eof") {
		return true
	}

	return false
}
