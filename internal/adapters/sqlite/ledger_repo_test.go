package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/edgegen/internal/adapters/sqlite"
	"github.com/example/edgegen/internal/ports/secondary"
)

func TestLedgerRepository_RunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerRepository(db)
	ctx := context.Background()

	err := repo.CreateRun(ctx, &secondary.RunRecord{ID: "RUN-001", Root: "/dev/tools", EntityCount: 2})
	if err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	runs, err := repo.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns returned %d runs, want 1", len(runs))
	}
	if runs[0].Status != "running" {
		t.Errorf("Status = %q, want %q", runs[0].Status, "running")
	}
	if runs[0].FinishedAt != "" {
		t.Errorf("FinishedAt = %q, want empty", runs[0].FinishedAt)
	}

	if err := repo.FinishRun(ctx, "RUN-001", "failed", "destination unwritable", 1); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	runs, err = repo.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	got := runs[0]
	if got.Status != "failed" {
		t.Errorf("Status = %q, want %q", got.Status, "failed")
	}
	if got.Error != "destination unwritable" {
		t.Errorf("Error = %q, want %q", got.Error, "destination unwritable")
	}
	if got.EntityCount != 1 {
		t.Errorf("EntityCount = %d, want 1", got.EntityCount)
	}
	if got.FinishedAt == "" {
		t.Error("FinishedAt should be set")
	}
	if got.Root != "/dev/tools" {
		t.Errorf("Root = %q, want %q", got.Root, "/dev/tools")
	}
}

func TestLedgerRepository_FinishRunNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerRepository(db)

	if err := repo.FinishRun(context.Background(), "RUN-404", "success", "", 0); err == nil {
		t.Error("FinishRun on unknown run should fail")
	}
}

func TestLedgerRepository_ListRunsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerRepository(db)
	ctx := context.Background()

	for _, id := range []string{"RUN-001", "RUN-002", "RUN-003"} {
		if err := repo.CreateRun(ctx, &secondary.RunRecord{ID: id, Root: "/r"}); err != nil {
			t.Fatalf("CreateRun(%s) failed: %v", id, err)
		}
	}

	runs, err := repo.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns(2) returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "RUN-003" || runs[1].ID != "RUN-002" {
		t.Errorf("ListRuns order = [%s %s], want [RUN-003 RUN-002]", runs[0].ID, runs[1].ID)
	}
}

func TestLedgerRepository_Outputs(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLedgerRepository(db)
	ctx := context.Background()

	if err := repo.CreateRun(ctx, &secondary.RunRecord{ID: "RUN-001", Root: "/r"}); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	outputs := []*secondary.OutputRecord{
		{RunID: "RUN-001", EntityKey: "cart", Path: "/r/edge-tests-cart/script.js", Digest: "aa", Bytes: 10, Status: "created"},
		{RunID: "RUN-001", EntityKey: "cart", Path: "/r/edge-tests-cart/style.css", Digest: "bb", Bytes: 20, Status: "unchanged"},
	}
	for _, o := range outputs {
		if err := repo.AddOutput(ctx, o); err != nil {
			t.Fatalf("AddOutput failed: %v", err)
		}
	}

	t.Run("rejects unknown status", func(t *testing.T) {
		err := repo.AddOutput(ctx, &secondary.OutputRecord{RunID: "RUN-001", EntityKey: "cart", Path: "p", Digest: "d", Status: "deleted"})
		if err == nil {
			t.Error("AddOutput with invalid status should fail")
		}
	})

	t.Run("rejects unknown run", func(t *testing.T) {
		err := repo.AddOutput(ctx, &secondary.OutputRecord{RunID: "RUN-404", EntityKey: "cart", Path: "p", Digest: "d", Status: "created"})
		if err == nil {
			t.Error("AddOutput for unknown run should fail")
		}
	})

	got, err := repo.ListOutputs(ctx, "RUN-001")
	if err != nil {
		t.Fatalf("ListOutputs failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListOutputs returned %d outputs, want 2", len(got))
	}
	if got[0].Path != outputs[0].Path || got[1].Path != outputs[1].Path {
		t.Errorf("ListOutputs order = [%s %s], want write order", got[0].Path, got[1].Path)
	}
	if got[1].Status != "unchanged" || got[1].Bytes != 20 || got[1].Digest != "bb" {
		t.Errorf("ListOutputs()[1] = %+v", got[1])
	}
}
