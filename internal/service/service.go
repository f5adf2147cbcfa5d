// Package service composes the history store, clipboard monitor, and search
// functions behind one facade. Presentation layers talk only to this
// package, never to the monitor or store directly.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MegoCs/clipboard-history/internal/clip"
	"github.com/MegoCs/clipboard-history/internal/content"
	"github.com/MegoCs/clipboard-history/internal/history"
	"github.com/MegoCs/clipboard-history/internal/imgcodec"
	"github.com/MegoCs/clipboard-history/internal/monitor"
	"github.com/MegoCs/clipboard-history/internal/search"
)

// ErrCorruptEntry reports a stored payload that can no longer be decoded
// for restoring to the clipboard. Distinct from the backend being
// unreachable (clip.ErrUnavailable).
var ErrCorruptEntry = errors.New("stored clipboard data is corrupt")

// Service is the facade consumed by presentation layers.
type Service struct {
	store   *history.Store
	backend clip.Backend
	mon     *monitor.Monitor

	storagePath  string
	pollInterval time.Duration

	mu      sync.Mutex
	started bool
}

// Option customises a Service.
type Option func(*Service)

// WithPollInterval sets the monitor poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) { s.pollInterval = d }
}

// WithStoragePath records the persistence file path for display purposes.
func WithStoragePath(path string) Option {
	return func(s *Service) { s.storagePath = path }
}

// New wires a Service from its collaborators. The store should already be
// loaded from persistence.
func New(store *history.Store, backend clip.Backend, opts ...Option) *Service {
	s := &Service{
		store:        store,
		backend:      backend,
		pollInterval: monitor.DefaultPollInterval,
	}
	for _, o := range opts {
		o(s)
	}
	s.mon = monitor.New(store, backend, monitor.WithPollInterval(s.pollInterval))
	return s
}

// StartMonitoring spawns the background polling loop exactly once and
// returns an event subscription. Subsequent calls return nil.
func (s *Service) StartMonitoring(ctx context.Context) *monitor.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true
	sub := s.mon.Subscribe()
	go s.mon.Run(ctx)
	return sub
}

// History returns a snapshot of the history, newest first.
func (s *Service) History() []content.Entry { return s.store.Snapshot() }

// HistoryCount returns the number of stored entries.
func (s *Service) HistoryCount() int { return s.store.Len() }

// Insert adds an entry directly, bypassing the monitor. Used for manual
// insertion and import; the store's adjacent-duplicate suppression still
// applies.
func (s *Service) Insert(e content.Entry) error { return s.store.Insert(e) }

// Search returns case-insensitive substring matches in history order.
func (s *Service) Search(query string) []search.Match {
	return search.Exact(s.store.Snapshot(), query)
}

// FuzzySearch returns typo-tolerant matches sorted by score.
func (s *Service) FuzzySearch(query string) []search.ScoredMatch {
	return search.Fuzzy(s.store.Snapshot(), query)
}

// UnifiedSearch runs both searches over one snapshot and returns both
// result sets.
func (s *Service) UnifiedSearch(query string) ([]search.Match, []search.ScoredMatch) {
	return search.Unified(s.store.Snapshot(), query)
}

// ClearHistory empties the history and persists the empty sequence.
func (s *Service) ClearHistory() error { return s.store.Clear() }

// Stats returns usage statistics over the current history.
func (s *Service) Stats() history.Stats { return s.store.UsageStats() }

// Limits reports the configured history bounds.
func (s *Service) Limits() (maxEntries, maxContentBytes int) { return s.store.Limits() }

// StoragePath returns the persistence file path, if known.
func (s *Service) StoragePath() string { return s.storagePath }

// CopyToClipboard writes the entry at index (in the current snapshot order)
// back to the system clipboard. A missing index returns false with a nil
// error; write failures return false with an error distinguishing a corrupt
// stored payload (ErrCorruptEntry) from an unreachable backend.
func (s *Service) CopyToClipboard(index int) (bool, error) {
	entry, ok := s.store.Get(index)
	if !ok {
		return false, nil
	}
	raw, err := toRaw(entry)
	if err != nil {
		return false, err
	}
	if err := s.backend.Write(raw); err != nil {
		return false, fmt.Errorf("clipboard write: %w", err)
	}
	// Pre-seed the monitor's change key so the write-back is not
	// re-captured as a new entry.
	s.mon.NoteWritten(raw)
	return true, nil
}

// Close releases the clipboard backend.
func (s *Service) Close() { s.backend.Close() }

// toRaw converts a stored entry back into the backend's native terms,
// decoding and re-validating image payloads.
func toRaw(e content.Entry) (*clip.Raw, error) {
	switch v := e.Content.(type) {
	case content.Text:
		return &clip.Raw{Kind: clip.KindText, Text: v.Value}, nil
	case content.Image:
		data, err := base64.StdEncoding.DecodeString(v.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
		}
		pixels, w, h, err := imgcodec.DecodePNG(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("%w: %dx%d image", ErrCorruptEntry, w, h)
		}
		return &clip.Raw{Kind: clip.KindImage, Pixels: pixels, Width: w, Height: h}, nil
	case content.RichText:
		return &clip.Raw{Kind: clip.KindRichText, HTML: v.HTML, PlainText: v.PlainFallback}, nil
	case content.FileList:
		return &clip.Raw{Kind: clip.KindFileList, Paths: v.Paths}, nil
	case content.Other:
		data, err := base64.StdEncoding.DecodeString(v.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
		}
		return &clip.Raw{Kind: clip.KindOther, ContentType: v.ContentType, Data: data}, nil
	}
	return nil, fmt.Errorf("%w: unknown content type %T", ErrCorruptEntry, e.Content)
}
