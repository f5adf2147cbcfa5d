package content

import (
	"fmt"
	"strings"
)

// Classify returns a coarse label for the content, used only to annotate
// previews. It is a heuristic; unrecognised content falls back to the
// variant's generic label and classification never fails.
func (e Entry) Classify() string {
	switch v := e.Content.(type) {
	case Text:
		return classifyText(v.Value)
	case Image:
		if v.Width > 1920 || v.Height > 1080 {
			return "Large Image"
		}
		return "Image"
	case RichText:
		return "Rich Text"
	case FileList:
		if len(v.Paths) == 1 {
			return "Single File"
		}
		return "Multiple Files"
	case Other:
		return "Binary Data"
	}
	return "Unknown"
}

func classifyText(s string) string {
	trimmed := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"):
		return "JSON"
	case strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">"):
		return "HTML/XML"
	case strings.Contains(s, "http://") || strings.Contains(s, "https://"):
		return "URL/Link"
	case strings.Count(s, "\n") >= 10:
		return "Multi-line"
	case isNumeric(s):
		return "Numeric"
	case !isASCII(s):
		return "Unicode/Emoji"
	default:
		return "Text"
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// FormatSize renders the estimated payload size in a human-readable unit.
func (e Entry) FormatSize() string {
	size := e.EstimatedSize()
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

// Preview returns a display string truncated to maxChars runes, prefixed
// with the variant label. Truncated previews append the classification and
// size so large entries stay recognisable.
func (e Entry) Preview(maxChars int) string {
	text := e.DisplayText()
	if len(text) <= maxChars {
		return fmt.Sprintf("[%s] %s", e.TypeName(), text)
	}
	runes := []rune(text)
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return fmt.Sprintf("[%s] %s [%s, %s...]", e.TypeName(), string(runes), e.Classify(), e.FormatSize())
}
