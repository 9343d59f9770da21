// Package report shapes pipeline outcomes into the serializable
// document persisted with a run and returned to callers.
package report

import (
	"proposal-backend/internal/analysis"
	"proposal-backend/internal/rules"
)

// Summary aggregates counts across the pipeline stages.
type Summary struct {
	Questions        int `json:"questions"`
	Yes              int `json:"yes"`
	No               int `json:"no"`
	Unsure           int `json:"unsure"`
	FailedQuestions  int `json:"failed_questions"`
	SpellingFindings int `json:"spelling_findings"`
	DroppedFindings  int `json:"dropped_findings"`
	FailedChunks     int `json:"failed_chunks"`
	Reviews          int `json:"reviews"`
	FailedReviewers  int `json:"failed_reviewers"`
}

// Summarize computes the Summary for an outcome.
func Summarize(outcome analysis.Outcome) Summary {
	s := Summary{
		Questions:       len(outcome.Results) + len(outcome.FailedQuestions),
		FailedQuestions: len(outcome.FailedQuestions),
		Reviews:         len(outcome.Feedback),
		FailedReviewers: len(outcome.FailedReviewers),
	}
	for _, r := range outcome.Results {
		switch r.Verdict {
		case rules.VerdictYes:
			s.Yes++
		case rules.VerdictNo:
			s.No++
		default:
			s.Unsure++
		}
	}
	if outcome.SpellCheck != nil {
		s.SpellingFindings = len(outcome.SpellCheck.Findings)
		s.DroppedFindings = outcome.SpellCheck.Dropped
		s.FailedChunks = len(outcome.SpellCheck.FailedChunks)
	}
	return s
}

// Build shapes the outcome into the report document. Question results
// keep their evaluation order; sections for stages that did not run
// are omitted.
func Build(outcome analysis.Outcome) map[string]any {
	doc := map[string]any{
		"proposal": outcome.Proposal,
		"summary":  Summarize(outcome),
	}
	if len(outcome.Results) > 0 || len(outcome.FailedQuestions) > 0 {
		doc["proposal_analysis"] = outcome.Results
		if len(outcome.FailedQuestions) > 0 {
			doc["failed_questions"] = outcome.FailedQuestions
		}
	}
	if outcome.SpellCheck != nil {
		doc["spell_check"] = map[string]any{
			"findings":      outcome.SpellCheck.Findings,
			"dropped":       outcome.SpellCheck.Dropped,
			"failed_chunks": outcome.SpellCheck.FailedChunks,
		}
	}
	if len(outcome.Feedback) > 0 || len(outcome.FailedReviewers) > 0 {
		doc["reviewer_feedback"] = outcome.Feedback
		if len(outcome.FailedReviewers) > 0 {
			doc["failed_reviewers"] = outcome.FailedReviewers
		}
	}
	return doc
}
