package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Collection names. Each one is an independent blob in the backend.
const (
	Tasks      = "tasks"
	Events     = "events"
	Notes      = "notes"
	QuickNotes = "quick_notes"
	Courses    = "courses"
	GCalIndex  = "gcal_index"
)

// ErrNotFound is returned by a Backend when a collection was never written.
var ErrNotFound = errors.New("collection not found")

// Backend stores one opaque blob per collection name.
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Close() error
}

// WriteError is a failed save. The caller's in-memory state is left as is.
type WriteError struct {
	Collection string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Store encodes collections as JSON on top of a Backend.
type Store struct {
	backend Backend
	logger  *zap.Logger
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Load returns the named collection. A missing or unreadable collection is
// not an error: it yields the zero value of T and is only logged.
func Load[T any](ctx context.Context, s *Store, name string) T {
	var empty T

	data, err := s.backend.Read(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Debug("Collection not found, starting empty", zap.String("collection", name))
		} else {
			s.logger.Warn("Could not read collection, starting empty",
				zap.String("collection", name),
				zap.Error(err),
			)
		}
		return empty
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn("Collection is corrupt, starting empty",
			zap.String("collection", name),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		return empty
	}
	return out
}

// Save replaces the named collection with v.
func (s *Store) Save(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &WriteError{Collection: name, Err: err}
	}
	if err := s.backend.Write(ctx, name, data); err != nil {
		s.logger.Error("Failed to save collection",
			zap.String("collection", name),
			zap.Error(err),
		)
		return &WriteError{Collection: name, Err: err}
	}
	s.logger.Debug("Collection saved",
		zap.String("collection", name),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
