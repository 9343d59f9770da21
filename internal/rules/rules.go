// Package rules evaluates yes/no/unsure compliance questions about a
// proposal against a call for proposals.
package rules

import (
	"context"
	"fmt"
	"strings"

	"proposal-backend/internal/llm"
)

const systemPrompt = `You are an expert compliance checker. Based on the provided context (call for proposal and proposal document), answer the given question with exactly one of these three formats:

"YES: [explanation]" - if the proposal clearly meets the requirement
"NO: [explanation]" - if the proposal clearly does not meet the requirement
"UNSURE: [explanation]" - if the information is unclear, missing, or ambiguous in the call or proposal document

CRITICAL INSTRUCTION: You MUST start your response with exactly one of these prefixes: "YES:", "NO:", or "UNSURE:". Never start with any other phrase.

If a question is about comparing the proposal to the call, it is ok to be unsure if the information is not provided in the call or proposal document.`

// ContextDoc is one named document given to the model as context.
// Docs are rendered in slice order so prompts are deterministic.
type ContextDoc struct {
	Name string
	Text string
}

// Result is the outcome of evaluating a single question. RawResponse
// always holds the model's reply verbatim, whatever the parse did.
type Result struct {
	Question    string  `json:"question"`
	Verdict     Verdict `json:"answer"`
	Reasoning   string  `json:"reasoning"`
	RawResponse string  `json:"raw_response"`
}

// Evaluate asks one compliance question against the context documents
// and parses the mandated YES:/NO:/UNSURE: reply. A reply in the
// wrong shape degrades to an Unsure result that carries the full
// response; it never fails. Gateway errors are returned to the caller
// so a multi-question run can record the unit as failed and continue.
func Evaluate(ctx context.Context, question string, docs []ContextDoc, client llm.Client, model string, instructions string) (Result, error) {
	var prompt strings.Builder
	prompt.WriteString("Here is the context:\n")
	for _, doc := range docs {
		fmt.Fprintf(&prompt, "--- %s ---\n%s\n\n", strings.ToUpper(doc.Name), doc.Text)
	}
	fmt.Fprintf(&prompt, "--- QUESTION ---\n%s\n\n", question)
	prompt.WriteString(`IMPORTANT: Start your response with exactly "YES:", "NO:", or "UNSURE:" - no other format is acceptable.`)
	if instructions != "" {
		fmt.Fprintf(&prompt, "\nAdditional instructions: %s\n", instructions)
	}

	raw, err := client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: prompt.String()},
	}, model)
	if err != nil {
		return Result{Question: question}, fmt.Errorf("evaluate question: %w", err)
	}

	verdict, reasoning := ParseVerdict(raw)
	return Result{
		Question:    question,
		Verdict:     verdict,
		Reasoning:   reasoning,
		RawResponse: raw,
	}, nil
}

// ParseVerdict matches the response prefix case-insensitively and
// strips it to obtain the reasoning. A response with no recognized
// prefix yields Unsure with the full text preserved behind an
// explicit marker.
func ParseVerdict(raw string) (Verdict, string) {
	trimmed := strings.TrimSpace(raw)
	upper := strings.ToUpper(trimmed)
	switch {
	case strings.HasPrefix(upper, "YES:"):
		return VerdictYes, strings.TrimSpace(trimmed[len("YES:"):])
	case strings.HasPrefix(upper, "NO:"):
		return VerdictNo, strings.TrimSpace(trimmed[len("NO:"):])
	case strings.HasPrefix(upper, "UNSURE:"):
		return VerdictUnsure, strings.TrimSpace(trimmed[len("UNSURE:"):])
	default:
		return VerdictUnsure, "Unexpected response format: " + trimmed
	}
}
