// Package storage persists the full ordered history as a JSON file.
//
// The file holds the whole newest-first sequence; binary payloads are
// base64 strings inside each entry, so the file is plain text. A missing
// or corrupt file loads as an empty history, never as a fatal error.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MegoCs/clipboard-history/internal/content"
)

const (
	appDir   = "clipboard-history"
	fileName = "history.json"
)

// Storage reads and writes the history file. It implements history.Saver.
type Storage struct {
	path string
}

// New returns a Storage rooted at the per-user config directory
// (e.g. ~/.config/clipboard-history/history.json), creating the directory
// if needed.
func New() (*Storage, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Storage{path: filepath.Join(dir, fileName)}, nil
}

// NewWithFile returns a Storage backed by an explicit file path, creating
// the parent directory if needed.
func NewWithFile(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &Storage{path: path}, nil
}

// Path returns the backing file path.
func (s *Storage) Path() string { return s.path }

// Load reads the stored history, newest first. A missing or unparseable
// file yields an empty history and a nil error.
func (s *Storage) Load() ([]content.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}
	var entries []content.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("history file corrupt, starting empty", "path", s.path, "err", err)
		return nil, nil
	}
	return entries, nil
}

// Save writes the full ordered sequence atomically (temp file + rename).
// The temp name is unique per call so concurrent processes writing the
// same history file cannot clobber each other's in-flight write.
func (s *Storage) Save(entries []content.Entry) error {
	if entries == nil {
		entries = []content.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), fileName+".*")
	if err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write history file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
