// Package history owns the bounded, ordered clipboard history.
//
// The store keeps entries newest-first and is the only shared mutable state
// in the process. One mutex guards the slice; every read hands out a value
// copy, so callers never observe partial mutation and searches never block
// a concurrent insert.
package history

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/MegoCs/clipboard-history/internal/content"
)

// Defaults for Config fields left at zero.
const (
	DefaultMaxEntries      = 1000
	DefaultMaxContentBytes = 10 * 1024 * 1024 // 10 MiB
)

// Config bounds a Store. Zero values take the package defaults.
type Config struct {
	// MaxEntries is the history length bound; the oldest entries are
	// evicted once it would be exceeded.
	MaxEntries int
	// MaxContentBytes is the per-entry payload size bound; larger entries
	// are rejected outright.
	MaxContentBytes int
}

func (c Config) withDefaults() Config {
	if c.MaxEntries <= 0 {
		c.MaxEntries = DefaultMaxEntries
	}
	if c.MaxContentBytes <= 0 {
		c.MaxContentBytes = DefaultMaxContentBytes
	}
	return c
}

// TooLargeError reports an entry rejected because its payload exceeds the
// configured per-entry bound.
type TooLargeError struct {
	Size  int
	Limit int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("content too large: %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

// Saver persists the full ordered history after every mutating operation.
// Save is called outside the store lock with a snapshot copy.
type Saver interface {
	Save(entries []content.Entry) error
}

// Stats is a read-only aggregate over the estimated sizes of all entries.
type Stats struct {
	Count        int
	TotalBytes   int
	AverageBytes int
	MaxItemBytes int
}

// Store is the bounded newest-first entry collection.
type Store struct {
	cfg   Config
	saver Saver // may be nil (no persistence)

	mu      sync.Mutex
	entries []content.Entry // index 0 is newest
}

// New returns a Store with the given bounds and persistence hook.
// saver may be nil to disable persistence.
func New(cfg Config, saver Saver) *Store {
	return &Store{cfg: cfg.withDefaults(), saver: saver}
}

// Load replaces the store contents with entries (newest first), trimming to
// the configured bound. Intended for startup restore, before the monitor runs.
func (s *Store) Load(entries []content.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]content.Entry, len(entries))
	copy(s.entries, entries)
	for len(s.entries) > s.cfg.MaxEntries {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

// Insert pushes e to the front of the history.
//
// Entries over the size bound are rejected with *TooLargeError without
// mutating state. An entry whose fingerprint equals the current front
// entry's is treated as a no-op success (adjacent-duplicate suppression);
// the same content reappearing after other entries is recorded again.
// A mutating insert evicts from the back until within bound, then persists
// a snapshot. Persistence failure is returned to the caller but never rolls
// back the in-memory mutation.
func (s *Store) Insert(e content.Entry) error {
	if size := e.EstimatedSize(); size > s.cfg.MaxContentBytes {
		return &TooLargeError{Size: size, Limit: s.cfg.MaxContentBytes}
	}

	s.mu.Lock()
	if len(s.entries) > 0 && s.entries[0].Fingerprint == e.Fingerprint {
		s.mu.Unlock()
		return nil
	}
	s.entries = append([]content.Entry{e}, s.entries...)
	// Loop rather than single-pop: the bound can be exceeded by more than
	// one if it was lowered at runtime.
	for len(s.entries) > s.cfg.MaxEntries {
		s.entries = s.entries[:len(s.entries)-1]
	}
	snapshot := make([]content.Entry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	slog.Debug("history entry added",
		"type", e.TypeName(),
		"bytes", e.EstimatedSize(),
		"count", len(snapshot),
	)

	return s.persist(snapshot)
}

// Snapshot returns a value copy of the current history, newest first.
func (s *Store) Snapshot() []content.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]content.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current history length.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Get returns the entry at index (0 = newest), reporting whether it exists.
func (s *Store) Get(index int) (content.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.entries) {
		return content.Entry{}, false
	}
	return s.entries[index], true
}

// Clear empties the history and persists the empty sequence.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return s.persist(nil)
}

// UsageStats aggregates the estimated sizes of all entries.
// Average is 0 when the history is empty.
func (s *Store) UsageStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Count: len(s.entries)}
	for _, e := range s.entries {
		size := e.EstimatedSize()
		st.TotalBytes += size
		if size > st.MaxItemBytes {
			st.MaxItemBytes = size
		}
	}
	if st.Count > 0 {
		st.AverageBytes = st.TotalBytes / st.Count
	}
	return st
}

// Limits reports the configured bounds.
func (s *Store) Limits() (maxEntries, maxContentBytes int) {
	return s.cfg.MaxEntries, s.cfg.MaxContentBytes
}

func (s *Store) persist(snapshot []content.Entry) error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(snapshot); err != nil {
		slog.Warn("history save failed", "err", err)
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}
