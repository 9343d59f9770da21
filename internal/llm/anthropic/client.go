// Package anthropic implements the llm.Client gateway on top of the
// official Anthropic SDK.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"proposal-backend/internal/llm"
)

// Client implements llm.Client using the Anthropic Messages API.
type Client struct {
	client anthropicsdk.Client
}

// NewClient constructs an Anthropic client. baseURL is optional and
// overrides the default endpoint when non-empty.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	return &Client{client: anthropicsdk.NewClient(opts...)}, nil
}

// Complete sends the messages to the Messages API. System-role
// messages map onto the request's system blocks; everything else is
// sent as user turns.
func (c *Client) Complete(ctx context.Context, messages []llm.Message, model string) (string, error) {
	if strings.TrimSpace(model) == "" {
		return "", fmt.Errorf("model is required")
	}

	var system []anthropicsdk.TextBlockParam
	var turns []anthropicsdk.MessageParam
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			system = append(system, anthropicsdk.TextBlockParam{Text: m.Content})
			continue
		}
		turns = append(turns, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(m.Content)))
	}
	if len(turns) == 0 {
		return "", fmt.Errorf("at least one user message is required")
	}

	resp, err := c.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(model),
		MaxTokens: 4096,
		System:    system,
		Messages:  turns,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
