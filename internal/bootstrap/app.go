package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"proposal-backend/internal/analysis"
	"proposal-backend/internal/llm"
	"proposal-backend/internal/llm/anthropic"
	"proposal-backend/internal/llm/openai"
	"proposal-backend/internal/review"
	"proposal-backend/internal/shared/config"
	"proposal-backend/internal/shared/storage/artifact"
	localstore "proposal-backend/internal/shared/storage/artifact/local"
	s3store "proposal-backend/internal/shared/storage/artifact/s3"
	"proposal-backend/internal/shared/storage/db"
	"proposal-backend/internal/shared/telemetry"
)

// App holds shared dependencies for the analyzer entrypoints.
type App struct {
	Config  config.Config
	DB      *sql.DB
	Repo    analysis.Repo
	Archive artifact.Store
	Service *analysis.Service
}

// Build prepares shared dependencies from configuration. The database
// and archive are optional; the model client is not.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	client, err := buildClient(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, repo, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Repo:    repo,
		Archive: buildArchive(ctx, cfg),
		Service: &analysis.Service{
			Client:          llm.WithRetry(client),
			Model:           cfg.LLMModel,
			SpellCheckModel: cfg.SpellCheckModel,
			Provider:        cfg.LLMProvider,
			ChunkSize:       cfg.ChunkSize,
			ChunkOverlap:    cfg.ChunkOverlap,
			Repo:            repo,
			Events: telemetry.EventFunc(func(e telemetry.Event) {
				telemetry.Info(e.Message, e.Data)
			}),
		},
	}
	return app, nil
}

// RunOptions derives pipeline options from configuration.
func (a *App) RunOptions() analysis.Options {
	opts := analysis.Options{SpellCheck: a.Config.SpellCheckEnabled}
	if a.Config.ReviewerFeedback {
		opts.ReviewerPersona = review.Personas
	}
	return opts
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildClient(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL)
	case "local":
		// Local OpenAI-compatible servers ignore the key but the
		// client requires one.
		key := cfg.OpenAIAPIKey
		if key == "" {
			key = "local"
		}
		if strings.TrimSpace(cfg.OpenAIBaseURL) == "" {
			return nil, fmt.Errorf("OPENAI_BASE_URL is required for the local provider")
		}
		return openai.NewClient(key, openai.WithBaseURL(cfg.OpenAIBaseURL))
	default:
		opts := []openai.Option{}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		return openai.NewClient(cfg.OpenAIAPIKey, opts...)
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, analysis.Repo, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil, nil
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultOptions()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, &analysis.PGRepo{DB: sqlDB}, nil
}

func buildArchive(ctx context.Context, cfg config.Config) artifact.Store {
	if cfg.S3Bucket != "" {
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			telemetry.Error("s3 archive unavailable", map[string]any{"err": err.Error()})
			return nil
		}
		return store
	}
	if cfg.ArchiveDir != "" {
		return localstore.New(cfg.ArchiveDir)
	}
	return nil
}
