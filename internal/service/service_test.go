package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/MegoCs/clipboard-history/internal/clip"
	"github.com/MegoCs/clipboard-history/internal/content"
	"github.com/MegoCs/clipboard-history/internal/history"
	"github.com/MegoCs/clipboard-history/internal/imgcodec"
)

// fakeBackend records writes and reports an empty clipboard.
type fakeBackend struct {
	writes   []*clip.Raw
	writeErr error
}

func (b *fakeBackend) Name() string             { return "fake" }
func (b *fakeBackend) Read() (*clip.Raw, error) { return nil, nil }
func (b *fakeBackend) Close()                   {}
func (b *fakeBackend) Write(raw *clip.Raw) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes = append(b.writes, raw)
	return nil
}

func newTestService(backend clip.Backend) *Service {
	return New(history.New(history.Config{}, nil), backend,
		WithPollInterval(time.Hour)) // effectively disables polling in tests
}

func TestStartMonitoringExactlyOnce(t *testing.T) {
	svc := newTestService(&fakeBackend{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := svc.StartMonitoring(ctx)
	if sub == nil {
		t.Fatal("first StartMonitoring returned nil")
	}
	defer sub.Cancel()

	if again := svc.StartMonitoring(ctx); again != nil {
		t.Error("second StartMonitoring should return nil")
	}
}

func TestSearchOperations(t *testing.T) {
	svc := newTestService(&fakeBackend{})
	for _, s := range []string{"Hello World", "Rust programming", "Clipboard manager"} {
		if err := svc.Insert(content.NewText(s)); err != nil {
			t.Fatal(err)
		}
	}

	if got := svc.Search("rust"); len(got) != 1 || got[0].Entry.DisplayText() != "Rust programming" {
		t.Errorf("Search(\"rust\") = %+v", got)
	}
	if got := svc.FuzzySearch("helo"); len(got) == 0 {
		t.Error("FuzzySearch(\"helo\") found nothing")
	}
	exact, fuzzyMatches := svc.UnifiedSearch("clip")
	if len(exact) != 1 {
		t.Errorf("unified exact = %d, want 1", len(exact))
	}
	if len(fuzzyMatches) == 0 {
		t.Error("unified fuzzy empty")
	}
}

func TestClearAndStats(t *testing.T) {
	svc := newTestService(&fakeBackend{})
	svc.Insert(content.NewText("one"))
	svc.Insert(content.NewText("two"))

	if err := svc.ClearHistory(); err != nil {
		t.Fatal(err)
	}
	if got := svc.HistoryCount(); got != 0 {
		t.Errorf("HistoryCount() = %d after clear", got)
	}
	if st := svc.Stats(); st != (history.Stats{}) {
		t.Errorf("Stats() = %+v after clear, want zeros", st)
	}
}

func TestCopyToClipboardMissingIndex(t *testing.T) {
	svc := newTestService(&fakeBackend{})
	ok, err := svc.CopyToClipboard(0)
	if err != nil {
		t.Fatalf("missing index must not error, got %v", err)
	}
	if ok {
		t.Error("missing index reported success")
	}
}

func TestCopyToClipboardText(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend)
	svc.Insert(content.NewText("restore me"))

	ok, err := svc.CopyToClipboard(0)
	if err != nil || !ok {
		t.Fatalf("CopyToClipboard = (%v, %v)", ok, err)
	}
	if len(backend.writes) != 1 || backend.writes[0].Text != "restore me" {
		t.Errorf("backend writes = %+v", backend.writes)
	}
}

func TestCopyToClipboardImageRoundTrip(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend)

	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	png, err := imgcodec.EncodePNG(pixels, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	svc.Insert(content.NewImage(png, content.FormatPNG, 2, 2))

	ok, err := svc.CopyToClipboard(0)
	if err != nil || !ok {
		t.Fatalf("CopyToClipboard = (%v, %v)", ok, err)
	}
	raw := backend.writes[0]
	if raw.Kind != clip.KindImage || raw.Width != 2 || raw.Height != 2 {
		t.Errorf("restored image = kind %d %dx%d", raw.Kind, raw.Width, raw.Height)
	}
}

func TestCopyToClipboardCorruptImage(t *testing.T) {
	svc := newTestService(&fakeBackend{})
	svc.Insert(content.Entry{
		ID:          "corrupt",
		Content:     content.Image{Data: base64.StdEncoding.EncodeToString([]byte("not a png")), Format: content.FormatPNG, Width: 1, Height: 1},
		Fingerprint: "fp-corrupt",
	})

	ok, err := svc.CopyToClipboard(0)
	if ok {
		t.Error("corrupt entry reported success")
	}
	if !errors.Is(err, ErrCorruptEntry) {
		t.Errorf("err = %v, want ErrCorruptEntry", err)
	}
}

func TestCopyToClipboardBackendFailure(t *testing.T) {
	backend := &fakeBackend{writeErr: clip.ErrUnavailable}
	svc := newTestService(backend)
	svc.Insert(content.NewText("x"))

	ok, err := svc.CopyToClipboard(0)
	if ok {
		t.Error("failed write reported success")
	}
	if !errors.Is(err, clip.ErrUnavailable) {
		t.Errorf("err = %v, want clip.ErrUnavailable", err)
	}
	if errors.Is(err, ErrCorruptEntry) {
		t.Error("backend failure misreported as corrupt data")
	}
}

func TestCopyToClipboardDegradations(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend)

	svc.Insert(content.NewRichText("<b>rich</b>", "rich"))
	svc.Insert(content.NewFileList([]string{"/a", "/b"}))

	// Index 0 is the file list (newest first).
	if ok, err := svc.CopyToClipboard(0); err != nil || !ok {
		t.Fatalf("file list copy = (%v, %v)", ok, err)
	}
	if raw := backend.writes[0]; raw.Kind != clip.KindFileList || len(raw.Paths) != 2 {
		t.Errorf("file list raw = %+v", raw)
	}

	if ok, err := svc.CopyToClipboard(1); err != nil || !ok {
		t.Fatalf("rich text copy = (%v, %v)", ok, err)
	}
	if raw := backend.writes[1]; raw.Kind != clip.KindRichText || raw.PlainText != "rich" {
		t.Errorf("rich text raw = %+v", raw)
	}
}
