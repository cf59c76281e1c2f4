package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/example/edgegen/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.WorkspaceAdapter = (*mockWorkspaceAdapter)(nil)
	_ secondary.LedgerRepository = (*mockLedgerRepository)(nil)
)

// mockWorkspaceAdapter implements secondary.WorkspaceAdapter in memory for testing.
type mockWorkspaceAdapter struct {
	mu         sync.Mutex
	sources    map[string][]byte // by file name
	outputs    map[string][]byte // by "key/name"
	unwritable map[string]bool   // entity keys whose directory cannot be written
	failFiles  map[string]bool   // "key/name" whose write fails after the directory check
	writes     []string          // "key/name" in write order
	prepares   int
}

func newMockWorkspaceAdapter() *mockWorkspaceAdapter {
	return &mockWorkspaceAdapter{
		sources:    make(map[string][]byte),
		outputs:    make(map[string][]byte),
		unwritable: make(map[string]bool),
		failFiles:  make(map[string]bool),
	}
}

func (m *mockWorkspaceAdapter) ReadSource(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: open %s: %w", secondary.ErrSourceMissing, m.SourcePath(name), os.ErrNotExist)
	}
	return b, nil
}

func (m *mockWorkspaceAdapter) ReadOutput(ctx context.Context, key, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outputs[key+"/"+name], nil
}

func (m *mockWorkspaceAdapter) PrepareOutput(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepares++
	if m.unwritable[key] {
		return fmt.Errorf("%w: /tmp/dev/edge-tests-%s: permission denied", secondary.ErrDestinationUnwritable, key)
	}
	return nil
}

func (m *mockWorkspaceAdapter) WriteOutput(ctx context.Context, key, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path := m.OutputPath(key, name)
	if m.unwritable[key] || m.failFiles[key+"/"+name] {
		return path, fmt.Errorf("%w: %s: permission denied", secondary.ErrDestinationUnwritable, path)
	}
	m.outputs[key+"/"+name] = append([]byte(nil), data...)
	m.writes = append(m.writes, key+"/"+name)
	return path, nil
}

func (m *mockWorkspaceAdapter) SeedSource(ctx context.Context, name string, data []byte, force bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sources[name]; ok && !force {
		return m.SourcePath(name), secondary.ErrDemoExists
	}
	m.sources[name] = data
	return m.SourcePath(name), nil
}

func (m *mockWorkspaceAdapter) Root() string {
	return "/tmp/dev"
}

func (m *mockWorkspaceAdapter) SourceDir() string {
	return "/tmp/dev/edge-tests-demo"
}

func (m *mockWorkspaceAdapter) SourcePath(name string) string {
	return m.SourceDir() + "/" + name
}

func (m *mockWorkspaceAdapter) OutputPath(key, name string) string {
	return "/tmp/dev/edge-tests-" + key + "/" + name
}

func (m *mockWorkspaceAdapter) output(key, name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.outputs[key+"/"+name])
}

func (m *mockWorkspaceAdapter) prepareCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prepares
}

func (m *mockWorkspaceAdapter) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

// mockLedgerRepository implements secondary.LedgerRepository for testing.
type mockLedgerRepository struct {
	runs         map[string]*secondary.RunRecord
	order        []string
	outputs      map[string][]*secondary.OutputRecord
	createRunErr error
}

func newMockLedgerRepository() *mockLedgerRepository {
	return &mockLedgerRepository{
		runs:    make(map[string]*secondary.RunRecord),
		outputs: make(map[string][]*secondary.OutputRecord),
	}
}

func (m *mockLedgerRepository) CreateRun(ctx context.Context, run *secondary.RunRecord) error {
	if m.createRunErr != nil {
		return m.createRunErr
	}
	r := *run
	r.Status = "running"
	m.runs[run.ID] = &r
	m.order = append(m.order, run.ID)
	return nil
}

func (m *mockLedgerRepository) FinishRun(ctx context.Context, id, status, errMsg string, entityCount int) error {
	r, ok := m.runs[id]
	if !ok {
		return errors.New("not found")
	}
	r.Status = status
	r.Error = errMsg
	r.EntityCount = entityCount
	r.FinishedAt = "2026-01-01T00:00:00Z"
	return nil
}

func (m *mockLedgerRepository) AddOutput(ctx context.Context, out *secondary.OutputRecord) error {
	if _, ok := m.runs[out.RunID]; !ok {
		return errors.New("unknown run")
	}
	m.outputs[out.RunID] = append(m.outputs[out.RunID], out)
	return nil
}

func (m *mockLedgerRepository) ListRuns(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	var result []*secondary.RunRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		result = append(result, m.runs[m.order[i]])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockLedgerRepository) ListOutputs(ctx context.Context, runID string) ([]*secondary.OutputRecord, error) {
	return m.outputs[runID], nil
}
