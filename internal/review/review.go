// Package review generates expert reviewer-style feedback on a
// proposal from one of a fixed set of reviewer personas.
package review

import (
	"context"
	"fmt"
	"strings"

	"proposal-backend/internal/llm"
)

// Reviewer personas. Each pairs a display name with a system prompt
// steering the model toward that reviewer's concerns.
const (
	PersonaSeniorScientist = "Senior Scientist (Technical Rigor Focus)"
	PersonaEarlyCareer     = "Early-Career Researcher (Innovation & Feasibility Focus)"
	PersonaProgramManager  = "Program Manager (Programmatic Fit Focus)"
)

// Personas lists the supported reviewer personas in display order.
var Personas = []string{
	PersonaSeniorScientist,
	PersonaEarlyCareer,
	PersonaProgramManager,
}

var personaPrompts = map[string]string{
	PersonaSeniorScientist: `You are a senior reviewer evaluating a research proposal under dual-anonymous peer review. You are reviewing the PROPOSAL document; the call document is provided for context only.

1. Use neutral language focused on the work (e.g., "the proposed investigation will...").
2. Provide a score (1-5) for each criterion based on the PROPOSAL: a. Scientific/Technical Merit, b. Relevance to Program Objectives, c. Cost Reasonableness.
3. For each score give a concise justification (1-2 sentences) referencing specific methodological, theoretical, or technical aspects from the PROPOSAL.
4. Summarize major strengths (at most 5 bullet points) related to scientific rigor, technical approach, innovation, and analysis methods.
5. Summarize major weaknesses (at most 5 bullet points) related to potential methodological flaws, inadequate uncertainty analysis, incomplete validation, or technical risks.
6. Provide 1-2 minor suggestions to improve the PROPOSAL.`,

	PersonaEarlyCareer: `You are an early-career researcher reviewing a research proposal under dual-anonymous peer review. Your focus is on innovation and practical feasibility. You are reviewing the PROPOSAL document; the call document is provided for context only.

1. Employ neutral language (e.g., "the proposed investigation will...").
2. Assign a score (1-5) for each criterion based on the PROPOSAL: a. Scientific/Technical Merit (emphasis on novelty and interdisciplinary integration), b. Relevance to Program Objectives, c. Cost Reasonableness (emphasis on efficient resource use).
3. For each criterion provide a brief rationale (1-2 sentences) focusing on creativity, novel methods, and risk mitigation as presented in the PROPOSAL.
4. List up to 5 major strengths related to innovative aspects or potential breakthroughs found in the PROPOSAL.
5. List up to 5 major weaknesses focused on feasibility concerns, unclear methodologies, or overlooked challenges.
6. Offer 1-2 minor recommendations for improving clarity of objectives or reducing technical risk.`,

	PersonaProgramManager: `You are a program manager reviewing a research proposal under dual-anonymous peer review. Your focus is on programmatic relevance and strategic fit. You are reviewing the PROPOSAL document; the call document is provided for context only.

1. Use neutral language (e.g., "the proposed investigation will...").
2. Provide a numeric score (1-5) for each criterion based on the PROPOSAL: a. Scientific/Technical Merit (briefly, from a programmatic standpoint), b. Relevance to Program Objectives (emphasis on strategic goals and mission priorities).
3. For each criterion give a concise explanation (1-2 sentences) focusing on budget structure, timeline feasibility, resource allocation, and strategic alignment.
4. Identify up to 5 major strengths such as realistic work plans, justified budget items, clear milestones, or strong institutional capabilities.
5. Identify up to 5 major weaknesses such as budget overestimations, unrealistic timelines, inadequate team expertise, or misaligned objectives.`,
}

const promptFooter = `

REMINDER: Focus your review entirely on the PROPOSAL document. The call document is only provided for context.

If you can't answer a question based on the provided proposal, just say "N/A". Don't make up information.`

// Feedback is one reviewer's free-text assessment of a proposal. The
// text is opaque markdown-ish prose; downstream consumers do not
// decompose it.
type Feedback struct {
	Reviewer string `json:"reviewer"`
	Text     string `json:"text"`
}

// Generate produces feedback on proposalText from the named persona.
// callText is optional context. An unknown persona is an error; a
// gateway failure propagates so the caller can record the unit as
// failed without aborting other reviewers.
func Generate(ctx context.Context, client llm.Client, model, persona, proposalText, callText string) (Feedback, error) {
	prompt, ok := personaPrompts[persona]
	if !ok {
		return Feedback{}, fmt.Errorf("unknown reviewer persona %q", persona)
	}

	var user strings.Builder
	fmt.Fprintf(&user, "--- PROPOSAL TEXT TO REVIEW ---\n%s", proposalText)
	if callText != "" {
		fmt.Fprintf(&user, "\n\n--- CALL FOR PROPOSAL TEXT (FOR CONTEXT ONLY) ---\n%s", callText)
	}

	raw, err := client.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompt + promptFooter},
		{Role: llm.RoleUser, Content: user.String()},
	}, model)
	if err != nil {
		return Feedback{}, fmt.Errorf("reviewer feedback (%s): %w", persona, err)
	}

	return Feedback{Reviewer: persona, Text: strings.TrimSpace(raw)}, nil
}
