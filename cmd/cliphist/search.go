package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MegoCs/clipboard-history/internal/search"
)

func newSearchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the saved clipboard history",
		Long: `Searches the saved history. By default both exact (case-insensitive
substring) and fuzzy matching run; fuzzy results are shown when any exist,
exact matches otherwise. Use --exact or --fuzzy to force one mode.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, args []string) error { return runSearch(v, args[0]) },
	}

	f := cmd.Flags()
	f.Bool("exact", false, "exact substring matching only")
	f.Bool("fuzzy", false, "fuzzy matching only")
	f.Int("preview", 100, "preview length in characters")
	addStoreFlags(cmd)

	return cmd
}

func runSearch(v *viper.Viper, query string) error {
	setupLogging(v)

	hs, _, err := openStore(v)
	if err != nil {
		return err
	}
	snapshot := hs.Snapshot()
	preview := v.GetInt("preview")

	switch {
	case v.GetBool("exact"):
		printExact(search.Exact(snapshot, query), preview)
	case v.GetBool("fuzzy"):
		printFuzzy(search.Fuzzy(snapshot, query), preview)
	default:
		exact, fuzzyMatches := search.Unified(snapshot, query)
		if len(fuzzyMatches) > 0 {
			printFuzzy(fuzzyMatches, preview)
		} else {
			printExact(exact, preview)
		}
	}
	return nil
}

func printExact(matches []search.Match, preview int) {
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, m := range matches {
		fmt.Printf("%3d. %s\n", m.Index, m.Entry.Preview(preview))
	}
}

func printFuzzy(matches []search.ScoredMatch, preview int) {
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, m := range matches {
		fmt.Printf("%3d. %s  (score %d)\n", m.Index, m.Entry.Preview(preview), m.Score)
	}
}
