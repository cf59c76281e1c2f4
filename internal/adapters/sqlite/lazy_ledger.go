package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/example/edgegen/internal/db"
	"github.com/example/edgegen/internal/ports/secondary"
)

// LazyLedgerRepository opens the ledger database on first use.
// Writes create the database; reads against a missing database return no records.
type LazyLedgerRepository struct {
	path string

	mu       sync.Mutex
	database *sql.DB
	repo     *LedgerRepository
}

// NewLazyLedgerRepository creates a ledger repository backed by the database at path.
func NewLazyLedgerRepository(path string) *LazyLedgerRepository {
	return &LazyLedgerRepository{path: path}
}

// open returns the underlying repository. Without create, a missing database yields nil, nil.
func (r *LazyLedgerRepository) open(create bool) (*LedgerRepository, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo != nil {
		return r.repo, nil
	}
	if !create {
		if _, err := os.Stat(r.path); errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
	}

	database, err := db.Open(r.path)
	if err != nil {
		return nil, err
	}
	r.database = database
	r.repo = NewLedgerRepository(database)
	return r.repo, nil
}

// Path returns the ledger database path.
func (r *LazyLedgerRepository) Path() string {
	return r.path
}

// CreateRun opens the ledger, creating it if needed, and records the start of a run.
func (r *LazyLedgerRepository) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	repo, err := r.open(true)
	if err != nil {
		return err
	}
	return repo.CreateRun(ctx, run)
}

// FinishRun sets the final status of a run.
func (r *LazyLedgerRepository) FinishRun(ctx context.Context, id, status, errMsg string, entityCount int) error {
	repo, err := r.open(true)
	if err != nil {
		return err
	}
	return repo.FinishRun(ctx, id, status, errMsg, entityCount)
}

// AddOutput records a written file.
func (r *LazyLedgerRepository) AddOutput(ctx context.Context, out *secondary.OutputRecord) error {
	repo, err := r.open(true)
	if err != nil {
		return err
	}
	return repo.AddOutput(ctx, out)
}

// ListRuns returns the most recent runs first.
func (r *LazyLedgerRepository) ListRuns(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	repo, err := r.open(false)
	if err != nil || repo == nil {
		return nil, err
	}
	return repo.ListRuns(ctx, limit)
}

// ListOutputs returns the files written by a run.
func (r *LazyLedgerRepository) ListOutputs(ctx context.Context, runID string) ([]*secondary.OutputRecord, error) {
	repo, err := r.open(false)
	if err != nil || repo == nil {
		return nil, err
	}
	return repo.ListOutputs(ctx, runID)
}

// Close closes the database if it was opened.
func (r *LazyLedgerRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.database == nil {
		return nil
	}
	err := r.database.Close()
	r.database, r.repo = nil, nil
	return err
}

// Ensure LazyLedgerRepository implements the interface
var _ secondary.LedgerRepository = (*LazyLedgerRepository)(nil)
