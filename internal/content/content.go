// Package content models a single captured clipboard payload.
//
// A payload is one of a closed set of variants (text, image, rich text,
// file list, or arbitrary binary). Binary data is always base64-encoded so
// that entries are safe to embed in JSON. Every entry carries a fingerprint
// derived from the content's semantic fields only; two entries with equal
// content always fingerprint identically within one process.
package content

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageFormat names the compressed encoding of an image payload.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "PNG"
	FormatJPEG ImageFormat = "JPEG"
	FormatBMP  ImageFormat = "BMP"
)

// Content is the closed set of clipboard payload variants. Exactly one
// concrete type is active per entry; code that inspects content switches
// over the concrete types.
type Content interface {
	isContent()
}

// Text is a plain UTF-8 string payload.
type Text struct {
	Value string `json:"value"`
}

// Image is a compressed image payload. Data holds the base64-encoded
// compressed bytes; Width and Height are the pixel dimensions of the
// decoded image.
type Image struct {
	Data   string      `json:"data"`
	Format ImageFormat `json:"format"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
}

// RichText is an HTML payload with an optional plain-text fallback.
type RichText struct {
	HTML          string `json:"html"`
	PlainFallback string `json:"plain_fallback,omitempty"`
}

// FileList is an ordered list of file paths.
type FileList struct {
	Paths []string `json:"paths"`
}

// Other is any payload we do not otherwise understand, kept verbatim.
// Data is base64-encoded.
type Other struct {
	ContentType string `json:"content_type"`
	Data        string `json:"data"`
}

func (Text) isContent()     {}
func (Image) isContent()    {}
func (RichText) isContent() {}
func (FileList) isContent() {}
func (Other) isContent()    {}

// Entry is one captured clipboard payload as stored in history.
// Entries are immutable after construction.
type Entry struct {
	ID          string
	Content     Content
	Timestamp   time.Time
	Fingerprint string
}

func newEntry(c Content) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Content:     c,
		Timestamp:   time.Now().UTC(),
		Fingerprint: Fingerprint(c),
	}
}

// NewText creates a plain-text entry.
func NewText(text string) Entry {
	return newEntry(Text{Value: text})
}

// NewImage creates an image entry from compressed image bytes.
// The bytes are base64-encoded for storage.
func NewImage(data []byte, format ImageFormat, width, height int) Entry {
	return newEntry(Image{
		Data:   base64.StdEncoding.EncodeToString(data),
		Format: format,
		Width:  width,
		Height: height,
	})
}

// NewRichText creates an HTML entry with an optional plain-text fallback
// (pass "" for none).
func NewRichText(html, plainFallback string) Entry {
	return newEntry(RichText{HTML: html, PlainFallback: plainFallback})
}

// NewFileList creates an entry holding an ordered list of file paths.
func NewFileList(paths []string) Entry {
	return newEntry(FileList{Paths: paths})
}

// NewOther creates an entry for an unrecognised payload type from raw bytes.
func NewOther(contentType string, data []byte) Entry {
	return newEntry(Other{
		ContentType: contentType,
		Data:        base64.StdEncoding.EncodeToString(data),
	})
}

// Fingerprint returns a deterministic hex digest of the content's semantic
// fields. The variant tag and every field participate, length-delimited, so
// that no two structurally different contents can collide by concatenation.
// ID and timestamp never participate.
func Fingerprint(c Content) string {
	h := sha256.New()
	switch v := c.(type) {
	case Text:
		hashField(h, "text", v.Value)
	case Image:
		hashField(h, "image", v.Data)
		hashField(h, "", string(v.Format))
		hashInt(h, v.Width)
		hashInt(h, v.Height)
	case RichText:
		hashField(h, "html", v.HTML)
		hashField(h, "", v.PlainFallback)
	case FileList:
		hashField(h, "files", "")
		for _, p := range v.Paths {
			hashField(h, "", p)
		}
	case Other:
		hashField(h, "other", v.ContentType)
		hashField(h, "", v.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashField(h hash.Hash, tag, s string) {
	if tag != "" {
		h.Write([]byte(tag))
		h.Write([]byte{0})
	}
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}

func hashInt(h hash.Hash, i int) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(i))
	h.Write(n[:])
}

// EstimatedSize returns the payload size in bytes: the sum of the byte
// lengths of the variant's payload fields. Base64-encoded fields count at
// their encoded length.
func (e Entry) EstimatedSize() int {
	switch v := e.Content.(type) {
	case Text:
		return len(v.Value)
	case Image:
		return len(v.Data)
	case RichText:
		return len(v.HTML) + len(v.PlainFallback)
	case FileList:
		n := 0
		for _, p := range v.Paths {
			n += len(p)
		}
		return n
	case Other:
		return len(v.ContentType) + len(v.Data)
	}
	return 0
}

// DisplayText returns a lossy human-readable rendering of the content.
// Search matches against this string; it never feeds the fingerprint.
func (e Entry) DisplayText() string {
	switch v := e.Content.(type) {
	case Text:
		return v.Value
	case Image:
		return fmt.Sprintf("%dx%d %s image", v.Width, v.Height, v.Format)
	case RichText:
		if v.PlainFallback != "" {
			return v.PlainFallback
		}
		return v.HTML
	case FileList:
		if len(v.Paths) == 1 {
			return "File: " + v.Paths[0]
		}
		return fmt.Sprintf("%d files: %s", len(v.Paths), strings.Join(v.Paths, ", "))
	case Other:
		return fmt.Sprintf("Binary data (%s)", v.ContentType)
	}
	return ""
}

// TypeName returns a short label for the active variant.
func (e Entry) TypeName() string {
	switch e.Content.(type) {
	case Text:
		return "Text"
	case Image:
		return "Image"
	case RichText:
		return "HTML"
	case FileList:
		return "Files"
	case Other:
		return "Binary"
	}
	return "Unknown"
}

// FormattedTimestamp renders the capture time in local time for display.
func (e Entry) FormattedTimestamp() string {
	return e.Timestamp.Local().Format("2006-01-02 15:04:05")
}
