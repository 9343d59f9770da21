package main

// Runs one analysis pass over a call/proposal pair:
//   CALL_FILE=call.pdf PROPOSAL_FILE=proposal.pdf go run ./cmd/analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"

	"proposal-backend/internal/analysis"
	"proposal-backend/internal/bootstrap"
	"proposal-backend/internal/report"
	"proposal-backend/internal/shared/config"
	"proposal-backend/internal/shared/storage/artifact"
	"proposal-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.CallFile == "" || cfg.ProposalFile == "" {
		log.Fatal("CALL_FILE and PROPOSAL_FILE must be set")
	}

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	questions, err := analysis.LoadQuestions(cfg.QuestionsFile)
	if err != nil {
		log.Fatalf("load questions: %v", err)
	}

	run, _, err := app.Service.Execute(ctx, cfg.CallFile, cfg.ProposalFile, questions, app.RunOptions(), report.Build)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	payload, err := json.MarshalIndent(run.Result, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}

	if app.Archive != nil {
		key := artifact.RunKey(run.ID)
		if _, err := app.Archive.Save(ctx, key, "application/json", bytes.NewReader(payload)); err != nil {
			telemetry.Error("archive report failed", map[string]any{"key": key, "err": err.Error()})
		} else {
			telemetry.Info("report archived", map[string]any{"key": key})
		}
	}

	if cfg.OutputFile != "" {
		if err := os.WriteFile(cfg.OutputFile, payload, 0o644); err != nil {
			log.Fatalf("write report: %v", err)
		}
		telemetry.Info("report written", map[string]any{"path": cfg.OutputFile, "run_id": run.ID})
		return
	}
	os.Stdout.Write(payload)
	os.Stdout.Write([]byte("\n"))
}
