package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new run.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	const query = `
INSERT INTO runs (
	id, call_file, proposal_file, status, provider, model, result, error_message,
	started_at, completed_at, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	payload, err := marshalJSONB(run.Result)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		run.ID,
		run.CallFile,
		run.ProposalFile,
		run.Status,
		run.Provider,
		run.Model,
		payload,
		run.ErrorMessage,
		run.StartedAt,
		run.CompletedAt,
		run.CreatedAt,
	)
	return err
}

// GetByID returns a run by ID.
func (r *PGRepo) GetByID(ctx context.Context, runID string) (Run, error) {
	const query = `
SELECT id, call_file, proposal_file, status, provider, model, result, error_message,
       started_at, completed_at, created_at
FROM runs
WHERE id = $1
LIMIT 1`
	var run Run
	var result sql.NullString
	var errorMessage sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, runID).Scan(
		&run.ID,
		&run.CallFile,
		&run.ProposalFile,
		&run.Status,
		&run.Provider,
		&run.Model,
		&result,
		&errorMessage,
		&startedAt,
		&completedAt,
		&run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	if result.Valid {
		run.Result = map[string]any{}
		if err := json.Unmarshal([]byte(result.String), &run.Result); err != nil {
			run.Result = nil
		}
	}
	if errorMessage.Valid {
		run.ErrorMessage = &errorMessage.String
	}
	if startedAt.Valid {
		run.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}

// Update writes status, result, error and timestamps for an existing run.
func (r *PGRepo) Update(ctx context.Context, run Run) error {
	const query = `
UPDATE runs
SET status = $1,
    result = COALESCE($2::jsonb, result),
    error_message = COALESCE($3::text, error_message),
    started_at = COALESCE($4::timestamptz, started_at),
    completed_at = COALESCE($5::timestamptz, completed_at),
    updated_at = now()
WHERE id = $6::uuid`

	var payload any
	if run.Result != nil {
		b, err := json.Marshal(run.Result)
		if err != nil {
			return err
		}
		payload = b
	}
	res, err := r.DB.ExecContext(ctx, query, run.Status, payload, run.ErrorMessage, run.StartedAt, run.CompletedAt, run.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns runs ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, call_file, proposal_file, status, provider, model, result, error_message,
       started_at, completed_at, created_at
FROM runs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var result sql.NullString
		var errorMessage sql.NullString
		var startedAt sql.NullTime
		var completedAt sql.NullTime
		if err := rows.Scan(
			&run.ID,
			&run.CallFile,
			&run.ProposalFile,
			&run.Status,
			&run.Provider,
			&run.Model,
			&result,
			&errorMessage,
			&startedAt,
			&completedAt,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		if result.Valid {
			run.Result = map[string]any{}
			if err := json.Unmarshal([]byte(result.String), &run.Result); err != nil {
				run.Result = nil
			}
		}
		if errorMessage.Valid {
			run.ErrorMessage = &errorMessage.String
		}
		if startedAt.Valid {
			run.StartedAt = &startedAt.Time
		}
		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

func marshalJSONB(value any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}
