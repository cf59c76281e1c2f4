package primary

import "context"

// HistoryService defines the primary port for the run ledger.
type HistoryService interface {
	// ListRuns retrieves the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]*RunEntry, error)

	// ListOutputs retrieves the files written by a run.
	ListOutputs(ctx context.Context, runID string) ([]*OutputEntry, error)
}

// RunEntry represents a recorded run at the port boundary.
type RunEntry struct {
	ID          string
	Root        string
	StartedAt   string
	FinishedAt  string
	Status      string // 'running', 'success', 'failed'
	EntityCount int
	Error       string
}

// OutputEntry represents a recorded output file at the port boundary.
type OutputEntry struct {
	RunID     string
	EntityKey string
	Path      string
	Digest    string
	Bytes     int
	Status    string
	CreatedAt string
}
