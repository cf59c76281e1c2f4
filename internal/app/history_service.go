package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/edgegen/internal/ports/primary"
	"github.com/example/edgegen/internal/ports/secondary"
)

// ErrLedgerDisabled is returned by history queries when no ledger is configured.
var ErrLedgerDisabled = errors.New("run ledger is disabled")

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	ledger secondary.LedgerRepository
}

// NewHistoryService creates a new HistoryService with injected dependencies.
func NewHistoryService(ledger secondary.LedgerRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		ledger: ledger,
	}
}

// ListRuns retrieves the most recent runs first.
func (s *HistoryServiceImpl) ListRuns(ctx context.Context, limit int) ([]*primary.RunEntry, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}

	records, err := s.ledger.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	entries := make([]*primary.RunEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.RunEntry{
			ID:          r.ID,
			Root:        r.Root,
			StartedAt:   r.StartedAt,
			FinishedAt:  r.FinishedAt,
			Status:      r.Status,
			EntityCount: r.EntityCount,
			Error:       r.Error,
		}
	}
	return entries, nil
}

// ListOutputs retrieves the files written by a run.
func (s *HistoryServiceImpl) ListOutputs(ctx context.Context, runID string) ([]*primary.OutputEntry, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}

	records, err := s.ledger.ListOutputs(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no outputs recorded for run %s", runID)
	}

	entries := make([]*primary.OutputEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.OutputEntry{
			RunID:     r.RunID,
			EntityKey: r.EntityKey,
			Path:      r.Path,
			Digest:    r.Digest,
			Bytes:     r.Bytes,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
