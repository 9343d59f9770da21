package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"proposal-backend/internal/extract"
	"proposal-backend/internal/llm"
	"proposal-backend/internal/review"
	"proposal-backend/internal/rules"
	"proposal-backend/internal/shared/metrics"
	"proposal-backend/internal/shared/telemetry"
	"proposal-backend/internal/spellcheck"
)

// Options selects which parts of the pipeline a run performs beyond
// the core question evaluation. RunID pins the persisted run ID when
// the caller already allocated one (queued runs); left empty, Execute
// generates a fresh ID.
type Options struct {
	RunID           string
	Instructions    string
	SpellCheck      bool
	ReviewerPersona []string
}

// Service drives the document-grounded compliance evaluation
// pipeline for one proposal at a time. All collaborators are injected;
// the service itself holds no mutable state between runs.
type Service struct {
	Client          llm.Client
	Model           string
	SpellCheckModel string
	Provider        string
	ChunkSize       int
	ChunkOverlap    int
	Repo            Repo
	Events          telemetry.EventSink
}

// AnalyzeProposal evaluates every question against the call and
// proposal documents and optionally runs the spell check and reviewer
// feedback passes. Extraction failure of either document aborts the
// run with an error ("could not run"); a failed question or reviewer
// is recorded and the loop continues.
func (s *Service) AnalyzeProposal(ctx context.Context, callPath, proposalPath string, questions []string, opts Options) (Outcome, error) {
	outcome := Outcome{Proposal: filepath.Base(proposalPath)}
	if len(questions) == 0 && !opts.SpellCheck && len(opts.ReviewerPersona) == 0 {
		return outcome, ErrNoQuestions
	}

	callText, err := extract.Extract(callPath)
	if err != nil {
		return outcome, fmt.Errorf("call document: %w", err)
	}
	proposalText, err := extract.Extract(proposalPath)
	if err != nil {
		return outcome, fmt.Errorf("proposal document: %w", err)
	}

	docs := []rules.ContextDoc{
		{Name: "call", Text: callText},
		{Name: "proposal", Text: proposalText},
	}

	for i, question := range questions {
		telemetry.Emit(s.Events, "progress", "evaluating question", map[string]any{
			"question": i + 1, "total": len(questions),
		})
		result, err := rules.Evaluate(ctx, question, docs, s.Client, s.Model, opts.Instructions)
		if err != nil {
			telemetry.Error("question evaluation failed", map[string]any{
				"question": question, "err": err.Error(),
			})
			outcome.FailedQuestions = append(outcome.FailedQuestions, i)
			continue
		}
		outcome.Results = append(outcome.Results, result)
	}

	if opts.SpellCheck {
		telemetry.Emit(s.Events, "progress", "spell checking proposal", nil)
		checker := &spellcheck.Checker{
			Client:       s.Client,
			Model:        s.spellModel(),
			ChunkSize:    s.ChunkSize,
			ChunkOverlap: s.ChunkOverlap,
			Events:       s.Events,
		}
		report := checker.CheckText(ctx, proposalText, isPDF(proposalPath))
		outcome.SpellCheck = &report
	}

	for _, persona := range opts.ReviewerPersona {
		telemetry.Emit(s.Events, "progress", "generating reviewer feedback", map[string]any{
			"reviewer": persona,
		})
		feedback, err := review.Generate(ctx, s.Client, s.Model, persona, proposalText, callText)
		if err != nil {
			telemetry.Error("reviewer feedback failed", map[string]any{
				"reviewer": persona, "err": err.Error(),
			})
			outcome.FailedReviewers = append(outcome.FailedReviewers, persona)
			continue
		}
		outcome.Feedback = append(outcome.Feedback, feedback)
	}

	return outcome, nil
}

// Execute runs AnalyzeProposal under a persisted Run lifecycle:
// queued, processing, then completed with the shaped report or failed
// with the error message. When no Repo is configured the analysis
// still runs; only persistence is skipped.
func (s *Service) Execute(ctx context.Context, callPath, proposalPath string, questions []string, opts Options, shape func(Outcome) map[string]any) (Run, Outcome, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	run := Run{
		ID:           runID,
		CallFile:     filepath.Base(callPath),
		ProposalFile: filepath.Base(proposalPath),
		Status:       StatusQueued,
		Provider:     s.Provider,
		Model:        s.Model,
		CreatedAt:    time.Now().UTC(),
	}
	if s.Repo != nil {
		if err := s.Repo.Create(ctx, run); err != nil {
			return run, Outcome{}, fmt.Errorf("create run: %w", err)
		}
	}

	started := time.Now().UTC()
	run.Status = StatusProcessing
	run.StartedAt = &started
	s.persist(ctx, &run)
	metrics.IncRunStarted()

	outcome, err := s.AnalyzeProposal(ctx, callPath, proposalPath, questions, opts)
	completed := time.Now().UTC()
	run.CompletedAt = &completed
	metrics.ObserveRunDurationMs(float64(completed.Sub(started).Milliseconds()))
	if err != nil {
		msg := err.Error()
		run.Status = StatusFailed
		run.ErrorMessage = &msg
		s.persist(ctx, &run)
		metrics.IncRunFailed()
		return run, outcome, err
	}

	run.Status = StatusCompleted
	metrics.IncRunCompleted()
	if shape != nil {
		run.Result = shape(outcome)
	}
	s.persist(ctx, &run)
	return run, outcome, nil
}

func (s *Service) persist(ctx context.Context, run *Run) {
	if s.Repo == nil {
		return
	}
	if err := s.Repo.Update(ctx, *run); err != nil {
		telemetry.Error("run persist failed", map[string]any{"run_id": run.ID, "err": err.Error()})
	}
}

func (s *Service) spellModel() string {
	if strings.TrimSpace(s.SpellCheckModel) != "" {
		return s.SpellCheckModel
	}
	return s.Model
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
