package biomarker

import (
	"context"
	"sync"

	"github.com/laborator/rezulta/model"
)

// Store persists CanonicalAlias records keyed by alias text. The validator
// only needs find-by-alias, insert-if-absent, and update; implementations
// must enforce alias uniqueness.
type Store interface {
	// Find returns the alias record, or nil with a nil error when the
	// alias has never been seen.
	Find(ctx context.Context, alias string) (*model.CanonicalAlias, error)

	// InsertIfAbsent stores the record unless the alias already exists.
	// It reports whether the insert took place.
	InsertIfAbsent(ctx context.Context, record model.CanonicalAlias) (bool, error)

	// Update overwrites the standardized name and ignored flag of an
	// existing alias. The alias text itself is never changed.
	Update(ctx context.Context, record model.CanonicalAlias) error
}

// MemoryStore is an in-process Store for tests and single-process use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.CanonicalAlias
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]model.CanonicalAlias)}
}

// Find implements Store.
func (s *MemoryStore) Find(_ context.Context, alias string) (*model.CanonicalAlias, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[alias]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// InsertIfAbsent implements Store.
func (s *MemoryStore) InsertIfAbsent(_ context.Context, record model.CanonicalAlias) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Alias]; ok {
		return false, nil
	}
	s.records[record.Alias] = record
	return true, nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, record model.CanonicalAlias) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Alias] = record
	return nil
}

// Len returns the number of stored aliases.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
