// Package clip provides a unified interface to the system clipboard.
//
// The system backend is built on golang.design/x/clipboard, which exposes
// text and PNG images on every supported platform. On a headless machine
// (no X11/Wayland display, no clipboard service) New falls back to a no-op
// backend so the rest of the program keeps working.
package clip

import "errors"

// ErrUnavailable reports that the system clipboard cannot be reached.
var ErrUnavailable = errors.New("clipboard unavailable")

// Kind tags the active payload of a Raw capture.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindRichText
	KindFileList
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindRichText:
		return "rich text"
	case KindFileList:
		return "file list"
	case KindOther:
		return "other"
	}
	return "unknown"
}

// Raw is one clipboard capture or write request in the backend's native
// terms. Exactly one payload group is populated, per Kind. Images are raw
// RGBA pixel buffers (4 bytes per pixel, row-major) with explicit
// dimensions, matching what clipboard services hand out before any
// compression.
type Raw struct {
	Kind Kind

	Text string

	Pixels []byte
	Width  int
	Height int

	HTML        string
	PlainText   string // fallback for HTML writes
	Paths       []string
	ContentType string
	Data        []byte
}

// Backend is the interface all clipboard implementations satisfy.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the best available clipboard content, preferring image
	// over rich text over plain text over other binary. Returns nil, nil
	// when the clipboard is empty or holds only unsupported types.
	Read() (*Raw, error)

	// Write sets the clipboard. Rich text and file lists may degrade to a
	// plain-text equivalent when the platform cannot represent them.
	Write(raw *Raw) error

	// Close releases any resources held by the backend.
	Close()
}
