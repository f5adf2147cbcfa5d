package clip

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.design/x/clipboard"

	"github.com/MegoCs/clipboard-history/internal/imgcodec"
)

type systemBackend struct{}

// New returns the system clipboard backend, or a headless no-op backend if
// the display environment is unavailable (e.g. a server without X11 or
// Wayland). clipboard.Init is called here rather than in init() so that
// CLI sub-commands that never touch the clipboard don't trigger the warning.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return &headlessBackend{}
	}
	return &systemBackend{}
}

func (b *systemBackend) Name() string { return "system clipboard" }

// Read prefers images over text; golang.design/x/clipboard does not expose
// rich text or file lists, so those kinds only enter history via direct
// insertion.
func (b *systemBackend) Read() (*Raw, error) {
	if png := clipboard.Read(clipboard.FmtImage); len(png) > 0 {
		pixels, w, h, err := imgcodec.DecodePNG(png)
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return &Raw{Kind: KindImage, Pixels: pixels, Width: w, Height: h}, nil
	}
	if text := clipboard.Read(clipboard.FmtText); len(text) > 0 {
		if strings.TrimSpace(string(text)) == "" {
			return nil, nil
		}
		return &Raw{Kind: KindText, Text: string(text)}, nil
	}
	return nil, nil
}

func (b *systemBackend) Write(raw *Raw) error {
	switch raw.Kind {
	case KindText:
		clipboard.Write(clipboard.FmtText, []byte(raw.Text))
	case KindImage:
		png, err := imgcodec.EncodePNG(raw.Pixels, raw.Width, raw.Height)
		if err != nil {
			return fmt.Errorf("write clipboard image: %w", err)
		}
		clipboard.Write(clipboard.FmtImage, png)
	case KindRichText:
		// No native HTML support; degrade to the plain fallback.
		text := raw.PlainText
		if text == "" {
			text = raw.HTML
		}
		clipboard.Write(clipboard.FmtText, []byte(text))
	case KindFileList:
		// Textual path listing; native file references are not restored.
		clipboard.Write(clipboard.FmtText, []byte(strings.Join(raw.Paths, "\n")))
	default:
		return fmt.Errorf("unsupported clipboard content kind %q", raw.Kind)
	}
	return nil
}

func (b *systemBackend) Close() {}
