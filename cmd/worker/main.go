package main

// Polls the run request queue and executes analyses:
//   PA_SQS_QUEUE_URL=... go run ./cmd/worker

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"proposal-backend/internal/analysis"
	"proposal-backend/internal/bootstrap"
	"proposal-backend/internal/queue"
	"proposal-backend/internal/report"
	"proposal-backend/internal/shared/config"
	"proposal-backend/internal/shared/metrics"
	"proposal-backend/internal/shared/storage/artifact"
	"proposal-backend/internal/shared/telemetry"
	"proposal-backend/internal/workerproc"
)

type runProcessor struct {
	app *bootstrap.App
}

func (p *runProcessor) ProcessRun(ctx context.Context, msg queue.Message) error {
	questions, err := analysis.LoadQuestions(p.app.Config.QuestionsFile)
	if err != nil {
		return err
	}

	opts := p.app.RunOptions()
	opts.RunID = msg.RunID

	run, _, err := p.app.Service.Execute(ctx, msg.CallFile, msg.ProposalFile, questions, opts, report.Build)
	if err != nil {
		return err
	}

	if p.app.Archive != nil {
		payload, err := json.Marshal(run.Result)
		if err != nil {
			return err
		}
		key := artifact.RunKey(run.ID)
		if _, err := p.app.Archive.Save(ctx, key, "application/json", bytes.NewReader(payload)); err != nil {
			telemetry.Error("archive report failed", map[string]any{"key": key, "err": err.Error()})
		}
	}
	return nil
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	consumer, err := queue.NewSQSClient(ctx)
	if err != nil {
		log.Fatalf("queue client: %v", err)
	}

	processor := &runProcessor{app: app}

	telemetry.Info("worker started", nil)
	for ctx.Err() == nil {
		msgs, err := consumer.Receive(ctx, 10)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			telemetry.Error("receive failed", map[string]any{"err": err.Error()})
			continue
		}
		for _, m := range msgs {
			if err := workerproc.HandleMessage(ctx, processor, m.Body); err != nil {
				telemetry.Error("message failed", map[string]any{"err": err.Error()})
				continue
			}
			if err := consumer.Delete(ctx, m.Handle); err != nil {
				telemetry.Error("ack failed", map[string]any{"err": err.Error()})
			}
		}
	}
	log.Printf("final metrics:\n%s", metrics.Render())
	telemetry.Info("worker stopped", nil)
}
