// Package ui implements the interactive console menu over the service
// facade. It is a thin presentation layer: all state lives behind the
// service, and every command works on a fresh history snapshot.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MegoCs/clipboard-history/internal/service"
)

const previewChars = 100

// Console is the interactive menu loop.
type Console struct {
	svc *service.Service
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Console reading commands from r and printing to w.
func New(svc *service.Service, r io.Reader, w io.Writer) *Console {
	return &Console{svc: svc, in: bufio.NewScanner(r), out: w}
}

// Run processes commands until the user quits or input ends.
func (c *Console) Run() error {
	fmt.Fprintf(c.out, "Clipboard manager started.\n")
	fmt.Fprintf(c.out, "Items loaded: %d\n", c.svc.HistoryCount())
	if p := c.svc.StoragePath(); p != "" {
		fmt.Fprintf(c.out, "Storage location: %s\n", p)
	}

	for {
		fmt.Fprintf(c.out, "\n=== Clipboard Manager ===\n")
		fmt.Fprintf(c.out, "Press Enter to view history, or type a command (h for help):\n> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		cmd := strings.ToLower(strings.TrimSpace(c.in.Text()))

		switch cmd {
		case "q", "quit", "exit":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		case "h", "help":
			c.printHelp()
		case "c", "clear":
			c.clearHistory()
		case "s", "search":
			c.searchInteractive()
		case "stats":
			c.printStats()
		case "":
			c.printHistory()
		default:
			if n, err := strconv.Atoi(cmd); err == nil {
				c.copyItem(n)
			} else {
				fmt.Fprintf(c.out, "Unknown command: %q. Type 'h' for help.\n", cmd)
			}
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
=== Commands ===
  [Enter]     - View clipboard history
  [number]    - Copy item by number back to the clipboard
  s, search   - Search history (exact and fuzzy matching)
  stats       - Show usage statistics
  c, clear    - Clear all history (with confirmation)
  h, help     - Show this help
  q, quit     - Exit`)
}

func (c *Console) printHistory() {
	entries := c.svc.History()
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "History is empty.")
		return
	}
	fmt.Fprintf(c.out, "\n%d item(s), newest first:\n", len(entries))
	for i, e := range entries {
		fmt.Fprintf(c.out, "%3d. %s  (%s)\n", i, e.Preview(previewChars), e.FormattedTimestamp())
	}
}

func (c *Console) printStats() {
	st := c.svc.Stats()
	maxEntries, maxBytes := c.svc.Limits()
	fmt.Fprintf(c.out, "Items: %d (limit %d)\n", st.Count, maxEntries)
	fmt.Fprintf(c.out, "Total size: %d bytes (per-item limit %d)\n", st.TotalBytes, maxBytes)
	fmt.Fprintf(c.out, "Average size: %d bytes\n", st.AverageBytes)
	fmt.Fprintf(c.out, "Largest item: %d bytes\n", st.MaxItemBytes)
}

func (c *Console) clearHistory() {
	fmt.Fprint(c.out, "Clear all history? (y/N) ")
	if !c.in.Scan() {
		return
	}
	if strings.ToLower(strings.TrimSpace(c.in.Text())) != "y" {
		fmt.Fprintln(c.out, "Cancelled.")
		return
	}
	if err := c.svc.ClearHistory(); err != nil {
		fmt.Fprintf(c.out, "History cleared, but saving failed: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "History cleared.")
}

func (c *Console) copyItem(index int) {
	ok, err := c.svc.CopyToClipboard(index)
	switch {
	case err != nil:
		fmt.Fprintf(c.out, "Copy failed: %v\n", err)
	case !ok:
		fmt.Fprintf(c.out, "No item at index %d.\n", index)
	default:
		fmt.Fprintf(c.out, "Item %d copied to clipboard.\n", index)
	}
}

// searchInteractive prompts for queries until the user types q. Fuzzy
// results are shown when any exist, otherwise exact matches.
func (c *Console) searchInteractive() {
	for {
		fmt.Fprint(c.out, "\nSearch (q to return): ")
		if !c.in.Scan() {
			return
		}
		query := strings.TrimSpace(c.in.Text())
		if query == "" {
			continue
		}
		if strings.ToLower(query) == "q" {
			return
		}

		exact, fuzzyMatches := c.svc.UnifiedSearch(query)
		switch {
		case len(fuzzyMatches) > 0:
			fmt.Fprintf(c.out, "%d fuzzy match(es):\n", len(fuzzyMatches))
			for _, m := range fuzzyMatches {
				fmt.Fprintf(c.out, "%3d. %s  (score %d)\n", m.Index, m.Entry.Preview(previewChars), m.Score)
			}
		case len(exact) > 0:
			fmt.Fprintf(c.out, "%d match(es):\n", len(exact))
			for _, m := range exact {
				fmt.Fprintf(c.out, "%3d. %s\n", m.Index, m.Entry.Preview(previewChars))
			}
		default:
			fmt.Fprintln(c.out, "No matches.")
			continue
		}

		fmt.Fprint(c.out, "Copy result number (Enter to skip): ")
		if !c.in.Scan() {
			return
		}
		sel := strings.TrimSpace(c.in.Text())
		if sel == "" {
			continue
		}
		if n, err := strconv.Atoi(sel); err == nil {
			c.copyItem(n)
		}
	}
}
