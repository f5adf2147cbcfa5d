// Package monitor polls the system clipboard and feeds changes into the
// history store.
//
// Change detection is two-layered on purpose: the monitor keeps a coarse
// tick-to-tick change key computed from the raw capture, and the store
// separately suppresses adjacent duplicates by content fingerprint. Either
// layer may suppress a repeat independently; the monitor's layer guarantees
// at most one attempted insert per genuine clipboard change.
package monitor

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MegoCs/clipboard-history/internal/clip"
	"github.com/MegoCs/clipboard-history/internal/content"
	"github.com/MegoCs/clipboard-history/internal/history"
	"github.com/MegoCs/clipboard-history/internal/imgcodec"
)

// DefaultPollInterval is the tick period used when none is configured.
const DefaultPollInterval = 500 * time.Millisecond

// Monitor is the background polling loop. Create with New, subscribe for
// events, then call Run in a goroutine.
type Monitor struct {
	store    *history.Store
	backend  clip.Backend
	interval time.Duration
	events   *Broadcaster

	mu      sync.Mutex
	lastKey string
}

// Option customises a Monitor.
type Option func(*Monitor)

// WithPollInterval overrides the default 500ms poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// New returns a Monitor feeding store from backend.
func New(store *history.Store, backend clip.Backend, opts ...Option) *Monitor {
	m := &Monitor{
		store:    store,
		backend:  backend,
		interval: DefaultPollInterval,
		events:   NewBroadcaster(100),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Subscribe returns a new event subscription. Subscribers may miss events
// if they fall behind; see Broadcaster.
func (m *Monitor) Subscribe() *Subscription {
	return m.events.Subscribe()
}

// Run polls the clipboard until ctx is cancelled. Errors never stop the
// loop; they are published on the event stream and the next tick proceeds.
func (m *Monitor) Run(ctx context.Context) {
	m.events.Publish(Event{Kind: Started})
	slog.Info("clipboard monitor started",
		"backend", m.backend.Name(),
		"interval", m.interval,
	)

	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("clipboard monitor stopped")
			return
		case <-t.C:
			m.tick()
		}
	}
}

func (m *Monitor) tick() {
	raw, err := m.backend.Read()
	if err != nil {
		slog.Warn("clipboard read failed", "err", err)
		m.events.Publish(Event{Kind: Error, Err: fmt.Errorf("clipboard read: %w", err)})
		return
	}
	if raw == nil {
		return
	}

	key := changeKey(raw)
	m.mu.Lock()
	unchanged := key == "" || key == m.lastKey
	m.mu.Unlock()
	if unchanged {
		return
	}

	entry, err := buildEntry(raw)
	if err != nil {
		slog.Warn("clipboard capture failed", "err", err)
		m.events.Publish(Event{Kind: Error, Err: err})
		return
	}

	if err := m.store.Insert(entry); err != nil {
		slog.Warn("history insert failed", "err", err)
		m.events.Publish(Event{Kind: Error, Err: err})
	} else {
		m.events.Publish(Event{Kind: ItemAdded, Entry: entry})
	}

	// The key advances on failure too, so a rejected capture is reported
	// once rather than on every tick it stays on the clipboard.
	m.mu.Lock()
	m.lastKey = key
	m.mu.Unlock()
}

// NoteWritten records raw as the most recently seen clipboard state.
// Called after a copy-back so the monitor does not re-capture its own write.
func (m *Monitor) NoteWritten(raw *clip.Raw) {
	m.mu.Lock()
	m.lastKey = changeKey(raw)
	m.mu.Unlock()
}

// buildEntry wraps a raw capture into an immutable history entry.
// Raw image pixels are compressed to PNG for storage.
func buildEntry(raw *clip.Raw) (content.Entry, error) {
	switch raw.Kind {
	case clip.KindText:
		return content.NewText(raw.Text), nil
	case clip.KindImage:
		png, err := imgcodec.EncodePNG(raw.Pixels, raw.Width, raw.Height)
		if err != nil {
			return content.Entry{}, fmt.Errorf("encode captured image: %w", err)
		}
		return content.NewImage(png, content.FormatPNG, raw.Width, raw.Height), nil
	case clip.KindRichText:
		return content.NewRichText(raw.HTML, raw.PlainText), nil
	case clip.KindFileList:
		return content.NewFileList(raw.Paths), nil
	default:
		return content.NewOther(raw.ContentType, raw.Data), nil
	}
}

// changeKey computes the coarse tick-to-tick change key for a capture.
// It is deliberately cheaper than the store fingerprint: HTML and binary
// payloads contribute only their length. Image pixels contribute a fast
// 64-bit digest instead; a raw RGBA buffer's length is fixed by its
// dimensions, so a length-only key would miss every same-size capture
// (consecutive screenshots share dimensions).
func changeKey(raw *clip.Raw) string {
	switch raw.Kind {
	case clip.KindText:
		return raw.Text
	case clip.KindImage:
		d := fnv.New64a()
		d.Write(raw.Pixels)
		return fmt.Sprintf("img:%x:%dx%d", d.Sum64(), raw.Width, raw.Height)
	case clip.KindRichText:
		return fmt.Sprintf("html:%d", len(raw.HTML))
	case clip.KindFileList:
		return "files:" + strings.Join(raw.Paths, "|")
	default:
		return fmt.Sprintf("other:%s:%d", raw.ContentType, len(raw.Data))
	}
}
