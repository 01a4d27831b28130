package index

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/storage"
)

func TestIndexPersistsOnlyWhenDirty(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewFileBackend(t.TempDir()), zap.NewNop())

	idx := Load(ctx, store)
	idx.Set("event-1", "gcal-1")
	idx.Set("event-2", "gcal-2")
	if err := idx.Save(ctx); err != nil {
		t.Fatal(err)
	}

	reloaded := Load(ctx, store)
	if reloaded.Get("event-1") != "gcal-1" {
		t.Fatalf("mapping not persisted: %v", reloaded.Mappings)
	}
	if reloaded.dirty {
		t.Fatal("freshly loaded index should be clean")
	}

	reloaded.Set("event-1", "gcal-1")
	if reloaded.dirty {
		t.Fatal("setting an unchanged mapping should not dirty the index")
	}

	orphans := reloaded.Orphans(map[string]bool{"event-1": true})
	if len(orphans) != 1 || orphans[0] != "event-2" {
		t.Fatalf("unexpected orphans %v", orphans)
	}
	reloaded.Remove("event-2")
	if !reloaded.dirty || reloaded.Get("event-2") != "" {
		t.Fatal("remove should drop the mapping and dirty the index")
	}
}
