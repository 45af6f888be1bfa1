// Package profile provides an optional, independently-constructed side table
// of per-fiber timing data. It is populated only when a tree runs with the
// profiling mode bit set, which keeps the core fiber type minimal in
// non-profiling use.
package profile

import (
	"sync"
	"time"

	"github.com/vango-dev/loom/pkg/fiber"
)

// Entry accumulates timing for one fiber across passes.
type Entry struct {
	BeginDuration    time.Duration // Time spent beginning work, cumulative
	CompleteDuration time.Duration // Time spent completing work, cumulative
	Passes           int           // Number of passes that touched the fiber
}

// Store is a side table keyed by fiber. Safe for use from the single
// reconciliation goroutine plus concurrent readers.
type Store struct {
	mu      sync.RWMutex
	entries map[*fiber.Fiber]*Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[*fiber.Fiber]*Entry)}
}

// Record adds one pass worth of timing for f.
func (s *Store) Record(f *fiber.Fiber, begin, complete time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[f]
	if !ok {
		e = &Entry{}
		s.entries[f] = e
	}
	e.BeginDuration += begin
	e.CompleteDuration += complete
	e.Passes++
}

// Lookup returns a copy of the entry for f.
func (s *Store) Lookup(f *fiber.Fiber) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[f]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of tracked fibers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Forget drops the entry for f, typically after its subtree is removed.
func (s *Store) Forget(f *fiber.Fiber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, f)
}
