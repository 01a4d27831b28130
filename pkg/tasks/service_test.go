package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

type failingBackend struct{ storage.Backend }

func (failingBackend) Write(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func newService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store := storage.New(&storage.FileBackend{Dir: t.TempDir()}, zap.NewNop())
	now := func() time.Time { return today }
	return NewService(context.Background(), store, zap.NewNop(), now), store
}

func TestServicePersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	task, err := svc.Add(ctx, "Revise calculus", model.PriorityHigh, "2024-03-12")
	if err != nil {
		t.Fatal(err)
	}
	stored := storage.Load[[]model.Task](ctx, store, storage.Tasks)
	if len(stored) != 1 || stored[0].ID != task.ID {
		t.Fatalf("task not persisted: %+v", stored)
	}

	if _, ok, err := svc.Toggle(ctx, task.ID); !ok || err != nil {
		t.Fatalf("toggle failed: ok=%v err=%v", ok, err)
	}
	stored = storage.Load[[]model.Task](ctx, store, storage.Tasks)
	if !stored[0].Completed {
		t.Fatal("completion not persisted")
	}

	if ok, err := svc.Delete(ctx, task.ID); !ok || err != nil {
		t.Fatalf("delete failed: ok=%v err=%v", ok, err)
	}
	stored = storage.Load[[]model.Task](ctx, store, storage.Tasks)
	if len(stored) != 0 {
		t.Fatalf("expected empty collection, got %+v", stored)
	}
}

func TestServiceAssignsIDsToLegacyRecords(t *testing.T) {
	ctx := context.Background()
	store := storage.New(&storage.FileBackend{Dir: t.TempDir()}, zap.NewNop())
	legacy := []map[string]any{{"task": "old one", "priority": "🔴 High", "created": "2023-01-01 10:00"}}
	if err := store.Save(ctx, storage.Tasks, legacy); err != nil {
		t.Fatal(err)
	}

	svc := NewService(ctx, store, zap.NewNop(), func() time.Time { return today })
	got := svc.Tasks()
	if len(got) != 1 || got[0].ID == "" || got[0].Text != "old one" || got[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected migrated task %+v", got)
	}

	again := NewService(ctx, store, zap.NewNop(), func() time.Time { return today })
	if again.Tasks()[0].ID != got[0].ID {
		t.Fatal("generated id was not persisted")
	}
}

func TestServiceKeepsStateWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	base := &storage.FileBackend{Dir: t.TempDir()}
	store := storage.New(failingBackend{base}, zap.NewNop())
	svc := NewService(ctx, store, zap.NewNop(), func() time.Time { return today })

	_, err := svc.Add(ctx, "Lab report", model.PriorityLow, "")
	var werr *storage.WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("expected write error, got %v", err)
	}
	if svc.Pending() != 1 {
		t.Fatal("in-memory task should survive a failed save")
	}
}

func TestServiceImportSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)
	if _, err := svc.Add(ctx, "Lab report", model.PriorityMedium, "2024-03-15"); err != nil {
		t.Fatal(err)
	}

	added, err := svc.Import(ctx, []model.Task{
		{Text: "Lab report", DueDate: "2024-03-15"},
		{Text: "Read chapter 4", DueDate: "2024-03-20"},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	stored := storage.Load[[]model.Task](ctx, store, storage.Tasks)
	if len(stored) != 2 {
		t.Fatalf("stored %d tasks, want 2", len(stored))
	}
	got := stored[1]
	if got.ID == "" || got.Priority != model.PriorityLow || got.Created == "" {
		t.Errorf("imported task defaults not applied: %+v", got)
	}

	if added, _ := svc.Import(ctx, []model.Task{{Text: "Read chapter 4", DueDate: "2024-03-20"}}); added != 0 {
		t.Errorf("second import added %d", added)
	}
}
