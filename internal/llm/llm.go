// Package llm defines the narrow gateway the analysis pipeline uses
// to talk to a language model provider. Concrete providers live in
// subpackages and are constructed at the application boundary; core
// packages only ever see the Client interface.
package llm

import (
	"context"
	"errors"
)

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client abstracts LLM providers. Complete sends an ordered message
// list to the given model and returns the assistant's raw text.
// Provider and network failures surface as errors; callers decide how
// to degrade.
type Client interface {
	Complete(ctx context.Context, messages []Message, model string) (string, error)
}

// Func adapts a plain function to the Client interface. Tests use it
// to script responses without any provider wiring.
type Func func(ctx context.Context, messages []Message, model string) (string, error)

// Complete calls the wrapped function.
func (f Func) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	return f(ctx, messages, model)
}

// ErrEmptyResponse is returned when a provider answers with no content.
var ErrEmptyResponse = errors.New("empty response from model")
