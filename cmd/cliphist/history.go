package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newHistoryCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Print the saved clipboard history",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runHistory(v) },
	}

	f := cmd.Flags()
	f.Int("limit", 0, "show at most N entries (0 = all)")
	f.Int("preview", 100, "preview length in characters")
	addStoreFlags(cmd)

	return cmd
}

func runHistory(v *viper.Viper) error {
	setupLogging(v)

	hs, _, err := openStore(v)
	if err != nil {
		return err
	}

	entries := hs.Snapshot()
	limit := v.GetInt("limit")
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if len(entries) == 0 {
		fmt.Println("History is empty.")
		return nil
	}
	preview := v.GetInt("preview")
	for i, e := range entries {
		fmt.Printf("%3d. %s  (%s)\n", i, e.Preview(preview), e.FormattedTimestamp())
	}
	return nil
}
