// cliphist: clipboard history manager with search.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "cliphist",
		Short: "Clipboard history with exact and fuzzy search",
		Long: `cliphist records snapshots of the system clipboard over time, keeps a
bounded newest-first history with duplicate suppression, and lets you
search it by exact substring or fuzzy match.

Run "cliphist run" to start the background monitor with an interactive
console. The other sub-commands operate on the saved history file directly.

Config file search order (first found wins):
  $HOME/.config/cliphist/cliphist.toml
  path supplied via --config

All flags can be set via CLIPHIST_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
		newSearchCmd(),
		newCopyCmd(),
		newClearCmd(),
		newStatsCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("cliphist %s\n", Version)
		},
	}
}
