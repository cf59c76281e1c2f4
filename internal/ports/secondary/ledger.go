package secondary

import "context"

// RunRecord is one customize run in the ledger.
type RunRecord struct {
	ID          string
	Root        string
	StartedAt   string
	FinishedAt  string
	Status      string // 'running', 'success', 'failed'
	EntityCount int
	Error       string
}

// OutputRecord is one file written during a run.
type OutputRecord struct {
	RunID     string
	EntityKey string
	Path      string
	Digest    string
	Bytes     int
	Status    string // 'created', 'updated', 'unchanged'
	CreatedAt string
}

// LedgerRepository defines the secondary port for run history persistence.
type LedgerRepository interface {
	// CreateRun records the start of a run.
	CreateRun(ctx context.Context, run *RunRecord) error

	// FinishRun sets the final status of a run.
	FinishRun(ctx context.Context, id, status, errMsg string, entityCount int) error

	// AddOutput records a written file.
	AddOutput(ctx context.Context, out *OutputRecord) error

	// ListRuns returns the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]*RunRecord, error)

	// ListOutputs returns the files written by a run, in write order.
	ListOutputs(ctx context.Context, runID string) ([]*OutputRecord, error)
}
