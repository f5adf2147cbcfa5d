package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entries serialize through a small envelope with a kind tag so the closed
// variant set survives a JSON round-trip. Binary payload fields are already
// base64 strings, so the encoded form is text-safe.

const (
	kindText     = "text"
	kindImage    = "image"
	kindRichText = "rich_text"
	kindFileList = "file_list"
	kindOther    = "other"
)

type entryJSON struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Content     json.RawMessage `json:"content"`
	Timestamp   time.Time       `json:"timestamp"`
	Fingerprint string          `json:"fingerprint"`
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	var kind string
	switch e.Content.(type) {
	case Text:
		kind = kindText
	case Image:
		kind = kindImage
	case RichText:
		kind = kindRichText
	case FileList:
		kind = kindFileList
	case Other:
		kind = kindOther
	default:
		return nil, fmt.Errorf("marshal entry %s: unknown content type %T", e.ID, e.Content)
	}
	raw, err := json.Marshal(e.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{
		ID:          e.ID,
		Kind:        kind,
		Content:     raw,
		Timestamp:   e.Timestamp,
		Fingerprint: e.Fingerprint,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var env entryJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	var c Content
	var err error
	switch env.Kind {
	case kindText:
		var v Text
		err = json.Unmarshal(env.Content, &v)
		c = v
	case kindImage:
		var v Image
		err = json.Unmarshal(env.Content, &v)
		c = v
	case kindRichText:
		var v RichText
		err = json.Unmarshal(env.Content, &v)
		c = v
	case kindFileList:
		var v FileList
		err = json.Unmarshal(env.Content, &v)
		c = v
	case kindOther:
		var v Other
		err = json.Unmarshal(env.Content, &v)
		c = v
	default:
		return fmt.Errorf("unmarshal entry %s: unknown kind %q", env.ID, env.Kind)
	}
	if err != nil {
		return err
	}
	e.ID = env.ID
	e.Content = c
	e.Timestamp = env.Timestamp
	e.Fingerprint = env.Fingerprint
	return nil
}
