package analysis

import (
	"time"

	"proposal-backend/internal/review"
	"proposal-backend/internal/rules"
	"proposal-backend/internal/spellcheck"
)

// Run statuses.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Run is one persisted analysis of a proposal against a call. Result
// holds the shaped report payload once the run completes.
type Run struct {
	ID           string         `json:"id"`
	CallFile     string         `json:"call_file"`
	ProposalFile string         `json:"proposal_file"`
	Status       string         `json:"status"`
	Provider     string         `json:"provider"`
	Model        string         `json:"model"`
	Result       map[string]any `json:"result,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

// Outcome collects everything one proposal's analysis produced.
// Results follows question order exactly. FailedQuestions lists
// question indexes whose gateway call failed; those have no entry in
// Results, so "ran and answered", "ran but uninterpretable" (an
// Unsure result), and "could not run" stay distinguishable.
type Outcome struct {
	Proposal        string             `json:"proposal"`
	Results         []rules.Result     `json:"results"`
	FailedQuestions []int              `json:"failed_questions,omitempty"`
	SpellCheck      *spellcheck.Report `json:"spell_check,omitempty"`
	Feedback        []review.Feedback  `json:"reviewer_feedback,omitempty"`
	FailedReviewers []string           `json:"failed_reviewers,omitempty"`
}
