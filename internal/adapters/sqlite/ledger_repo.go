// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/edgegen/internal/ports/secondary"
)

// LedgerRepository implements secondary.LedgerRepository with SQLite.
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new SQLite ledger repository.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateRun persists the start of a run.
func (r *LedgerRepository) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	status := run.Status
	if status == "" {
		status = "running"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, root, status, entity_count) VALUES (?, ?, ?, ?)`,
		run.ID,
		run.Root,
		status,
		run.EntityCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun sets the final status of a run.
func (r *LedgerRepository) FinishRun(ctx context.Context, id, status, errMsg string, entityCount int) error {
	var errText sql.NullString
	if errMsg != "" {
		errText = sql.NullString{String: errMsg, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, entity_count = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status,
		errText,
		entityCount,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("run %s not found", id)
	}

	return nil
}

// AddOutput records a written file.
func (r *LedgerRepository) AddOutput(ctx context.Context, out *secondary.OutputRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO outputs (run_id, entity_key, path, digest, bytes, status) VALUES (?, ?, ?, ?, ?, ?)`,
		out.RunID,
		out.EntityKey,
		out.Path,
		out.Digest,
		out.Bytes,
		out.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to add output: %w", err)
	}

	return nil
}

// ListRuns retrieves the most recent runs first. A non-positive limit returns all runs.
func (r *LedgerRepository) ListRuns(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	query := `SELECT id, root, started_at, finished_at, status, entity_count, error FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.RunRecord
	for rows.Next() {
		var (
			startedAt  time.Time
			finishedAt sql.NullTime
			errText    sql.NullString
		)

		run := &secondary.RunRecord{}
		err := rows.Scan(&run.ID, &run.Root, &startedAt, &finishedAt, &run.Status, &run.EntityCount, &errText)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.StartedAt = startedAt.Format(time.RFC3339)
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time.Format(time.RFC3339)
		}
		run.Error = errText.String

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// ListOutputs retrieves the files written by a run, in write order.
func (r *LedgerRepository) ListOutputs(ctx context.Context, runID string) ([]*secondary.OutputRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT run_id, entity_key, path, digest, bytes, status, created_at FROM outputs WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	defer rows.Close()

	var outputs []*secondary.OutputRecord
	for rows.Next() {
		var createdAt time.Time

		out := &secondary.OutputRecord{}
		err := rows.Scan(&out.RunID, &out.EntityKey, &out.Path, &out.Digest, &out.Bytes, &out.Status, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan output: %w", err)
		}
		out.CreatedAt = createdAt.Format(time.RFC3339)

		outputs = append(outputs, out)
	}

	return outputs, rows.Err()
}

// Ensure LedgerRepository implements the interface
var _ secondary.LedgerRepository = (*LedgerRepository)(nil)
