package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MegoCs/clipboard-history/internal/clip"
	"github.com/MegoCs/clipboard-history/internal/content"
	"github.com/MegoCs/clipboard-history/internal/history"
)

// scriptedBackend returns its reads in order, repeating the last one.
type scriptedBackend struct {
	reads []func() (*clip.Raw, error)
	pos   int
}

func (b *scriptedBackend) Name() string { return "scripted" }

func (b *scriptedBackend) Read() (*clip.Raw, error) {
	if b.pos < len(b.reads)-1 {
		defer func() { b.pos++ }()
	}
	if len(b.reads) == 0 {
		return nil, nil
	}
	return b.reads[b.pos]()
}

func (b *scriptedBackend) Write(*clip.Raw) error { return nil }
func (b *scriptedBackend) Close()                {}

func text(s string) func() (*clip.Raw, error) {
	return func() (*clip.Raw, error) { return &clip.Raw{Kind: clip.KindText, Text: s}, nil }
}

func drain(sub *Subscription) []Event {
	var out []Event
	for {
		select {
		case ev := <-sub.C:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestTickInsertsOnChange(t *testing.T) {
	store := history.New(history.Config{}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){text("hello")}})
	sub := m.Subscribe()

	m.tick()

	if got := store.Len(); got != 1 {
		t.Fatalf("store len = %d, want 1", got)
	}
	events := drain(sub)
	if len(events) != 1 || events[0].Kind != ItemAdded {
		t.Errorf("events = %+v, want one ItemAdded", events)
	}
	if events[0].Entry.DisplayText() != "hello" {
		t.Errorf("event entry = %q", events[0].Entry.DisplayText())
	}
}

func TestTickSuppressesUnchangedContent(t *testing.T) {
	store := history.New(history.Config{}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){text("same")}})

	for i := 0; i < 5; i++ {
		m.tick()
	}
	if got := store.Len(); got != 1 {
		t.Errorf("store len = %d after repeated identical ticks, want 1", got)
	}
}

func TestTickDetectsSequenceOfChanges(t *testing.T) {
	store := history.New(history.Config{}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){
		text("one"), text("one"), text("two"), text("one"),
	}})

	for i := 0; i < 4; i++ {
		m.tick()
	}
	snap := store.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("store len = %d, want 3 (one, two, one)", len(snap))
	}
	if snap[0].DisplayText() != "one" || snap[1].DisplayText() != "two" {
		t.Errorf("unexpected order: %q, %q", snap[0].DisplayText(), snap[1].DisplayText())
	}
}

func TestTickSkipsEmptyClipboard(t *testing.T) {
	store := history.New(history.Config{}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){
		func() (*clip.Raw, error) { return nil, nil },
	}})
	sub := m.Subscribe()

	m.tick()

	if store.Len() != 0 {
		t.Error("empty clipboard produced an insert")
	}
	if events := drain(sub); len(events) != 0 {
		t.Errorf("empty clipboard produced events: %+v", events)
	}
}

func TestTickPublishesErrorOnReadFailure(t *testing.T) {
	store := history.New(history.Config{}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){
		func() (*clip.Raw, error) { return nil, errors.New("no display") },
		text("recovered"),
	}})
	sub := m.Subscribe()

	m.tick()
	events := drain(sub)
	if len(events) != 1 || events[0].Kind != Error {
		t.Fatalf("events = %+v, want one Error", events)
	}

	// The loop keeps going: the next tick still captures.
	m.tick()
	if store.Len() != 1 {
		t.Error("monitor stopped capturing after a read error")
	}
}

func TestTickPublishesErrorOnOversizedInsert(t *testing.T) {
	store := history.New(history.Config{MaxContentBytes: 4}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){text("way too large")}})
	sub := m.Subscribe()

	m.tick()

	if store.Len() != 0 {
		t.Error("oversized content entered history")
	}
	events := drain(sub)
	if len(events) != 1 || events[0].Kind != Error {
		t.Fatalf("events = %+v, want one Error", events)
	}
	var tooLarge *history.TooLargeError
	if !errors.As(events[0].Err, &tooLarge) {
		t.Errorf("event error = %v, want *history.TooLargeError", events[0].Err)
	}

	// The change key advanced, so the same oversized content is reported
	// once, not every tick.
	m.tick()
	if events := drain(sub); len(events) != 0 {
		t.Errorf("oversized content re-reported: %+v", events)
	}
}

func TestTickStoreSuppressionStillApplies(t *testing.T) {
	// A direct insert bypasses the monitor's tick key; the store's
	// adjacent-fingerprint check is the second layer.
	store := history.New(history.Config{}, nil)
	store.Insert(content.NewText("dup"))

	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){text("dup")}})
	m.tick()

	if got := store.Len(); got != 1 {
		t.Errorf("store len = %d, want 1 (store-level suppression)", got)
	}
}

func TestNoteWrittenSuppressesRecapture(t *testing.T) {
	store := history.New(history.Config{}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){text("written back")}})

	m.NoteWritten(&clip.Raw{Kind: clip.KindText, Text: "written back"})
	m.tick()

	if store.Len() != 0 {
		t.Error("copy-back was re-captured as a new entry")
	}
}

func TestRunEmitsStartedAndStopsOnCancel(t *testing.T) {
	store := history.New(history.Config{}, nil)
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){text("tick")}},
		WithPollInterval(time.Millisecond))
	sub := m.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	// First event must be Started, exactly once.
	select {
	case ev := <-sub.C:
		if ev.Kind != Started {
			t.Errorf("first event = %v, want Started", ev.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("no Started event")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancellation")
	}
}

func TestChangeKeyPerVariant(t *testing.T) {
	tests := []struct {
		name string
		raw  *clip.Raw
		want string
	}{
		{"text is itself", &clip.Raw{Kind: clip.KindText, Text: "abc"}, "abc"},
		{
			"html uses length",
			&clip.Raw{Kind: clip.KindRichText, HTML: "<b>x</b>"},
			"html:8",
		},
		{
			"files join paths",
			&clip.Raw{Kind: clip.KindFileList, Paths: []string{"/a", "/b"}},
			"files:/a|/b",
		},
		{
			"other uses type and length",
			&clip.Raw{Kind: clip.KindOther, ContentType: "app/x", Data: []byte{1, 2}},
			"other:app/x:2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := changeKey(tt.raw); got != tt.want {
				t.Errorf("changeKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChangeKeyImageReflectsPixelContent(t *testing.T) {
	black := &clip.Raw{Kind: clip.KindImage, Pixels: make([]byte, 16), Width: 2, Height: 2}
	whitePix := make([]byte, 16)
	for i := range whitePix {
		whitePix[i] = 0xff
	}
	white := &clip.Raw{Kind: clip.KindImage, Pixels: whitePix, Width: 2, Height: 2}

	if changeKey(black) == changeKey(white) {
		t.Error("same-dimension images with different pixels share a change key")
	}

	again := &clip.Raw{Kind: clip.KindImage, Pixels: make([]byte, 16), Width: 2, Height: 2}
	if changeKey(black) != changeKey(again) {
		t.Error("identical captures produced different change keys")
	}
}

func TestTickCapturesSameDimensionImages(t *testing.T) {
	// Consecutive screenshots share dimensions; only the pixels change.
	store := history.New(history.Config{}, nil)
	whitePix := make([]byte, 2*2*4)
	for i := range whitePix {
		whitePix[i] = 0xff
	}
	m := New(store, &scriptedBackend{reads: []func() (*clip.Raw, error){
		func() (*clip.Raw, error) {
			return &clip.Raw{Kind: clip.KindImage, Pixels: make([]byte, 2*2*4), Width: 2, Height: 2}, nil
		},
		func() (*clip.Raw, error) {
			return &clip.Raw{Kind: clip.KindImage, Pixels: whitePix, Width: 2, Height: 2}, nil
		},
	}})

	m.tick()
	m.tick()

	if got := store.Len(); got != 2 {
		t.Errorf("store len = %d, want 2: second same-dimension image was suppressed", got)
	}
}
