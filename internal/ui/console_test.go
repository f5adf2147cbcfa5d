package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/MegoCs/clipboard-history/internal/clip"
	"github.com/MegoCs/clipboard-history/internal/content"
	"github.com/MegoCs/clipboard-history/internal/history"
	"github.com/MegoCs/clipboard-history/internal/service"
)

type nopBackend struct{}

func (nopBackend) Name() string             { return "nop" }
func (nopBackend) Read() (*clip.Raw, error) { return nil, nil }
func (nopBackend) Write(*clip.Raw) error    { return nil }
func (nopBackend) Close()                   {}

func newConsole(t *testing.T, input string, entries ...string) (*Console, *strings.Builder) {
	t.Helper()
	store := history.New(history.Config{}, nil)
	for i := len(entries) - 1; i >= 0; i-- {
		if err := store.Insert(content.NewText(entries[i])); err != nil {
			t.Fatal(err)
		}
	}
	svc := service.New(store, nopBackend{}, service.WithPollInterval(time.Hour))
	var out strings.Builder
	return New(svc, strings.NewReader(input), &out), &out
}

func TestRunQuit(t *testing.T) {
	c, out := newConsole(t, "q\n")
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Error("missing goodbye message")
	}
}

func TestRunShowsHistory(t *testing.T) {
	c, out := newConsole(t, "\nq\n", "newest entry", "older entry")
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "newest entry") || !strings.Contains(got, "older entry") {
		t.Errorf("history listing missing entries:\n%s", got)
	}
	if strings.Index(got, "newest entry") > strings.Index(got, "older entry") {
		t.Error("entries not listed newest first")
	}
}

func TestRunSearchFindsFuzzyMatch(t *testing.T) {
	c, out := newConsole(t, "s\nhelo\n\nq\nq\n", "Hello World", "unrelated")
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Hello World") {
		t.Errorf("search output missing match:\n%s", out.String())
	}
}

func TestRunClearNeedsConfirmation(t *testing.T) {
	c, out := newConsole(t, "c\nn\n\nq\n", "still here")
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Cancelled.") {
		t.Error("missing cancellation message")
	}
	if !strings.Contains(got, "still here") {
		t.Error("declined clear removed history anyway")
	}
}

func TestRunCopyMissingIndex(t *testing.T) {
	c, out := newConsole(t, "7\nq\n")
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "No item at index 7") {
		t.Errorf("missing not-found message:\n%s", out.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	c, out := newConsole(t, "frobnicate\nq\n")
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Unknown command") {
		t.Error("missing unknown-command message")
	}
}
