package index

import (
	"context"
	"sync"

	"github.com/harrisonrobin/studydesk/pkg/storage"
)

// EventIndex maps planner event ids to Google Calendar event ids. It lives
// in the gcal_index collection and is only written when it changed.
type EventIndex struct {
	Mappings map[string]string
	store    *storage.Store
	mu       sync.RWMutex
	dirty    bool
}

func Load(ctx context.Context, store *storage.Store) *EventIndex {
	mappings := storage.Load[map[string]string](ctx, store, storage.GCalIndex)
	if mappings == nil {
		mappings = make(map[string]string)
	}
	return &EventIndex{Mappings: mappings, store: store}
}

func (idx *EventIndex) Save(ctx context.Context) error {
	idx.mu.RLock()
	if !idx.dirty {
		idx.mu.RUnlock()
		return nil
	}
	idx.mu.RUnlock()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if err := idx.store.Save(ctx, storage.GCalIndex, idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *EventIndex) Get(eventID string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[eventID]
}

func (idx *EventIndex) Set(eventID, calendarID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.Mappings[eventID] != calendarID {
		idx.Mappings[eventID] = calendarID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.Mappings[eventID]; exists {
		delete(idx.Mappings, eventID)
		idx.dirty = true
	}
}

// Orphans returns mapped ids that are not in live, i.e. events deleted
// locally whose calendar copies still exist.
func (idx *EventIndex) Orphans(live map[string]bool) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var out []string
	for id := range idx.Mappings {
		if !live[id] {
			out = append(out, id)
		}
	}
	return out
}
