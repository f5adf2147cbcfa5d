package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "stats",
		Short:   "Show history usage statistics",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStats(v) },
	}

	addStoreFlags(cmd)
	return cmd
}

func runStats(v *viper.Viper) error {
	setupLogging(v)

	hs, store, err := openStore(v)
	if err != nil {
		return err
	}
	st := hs.UsageStats()
	maxEntries, maxBytes := hs.Limits()

	fmt.Printf("Storage:      %s\n", store.Path())
	fmt.Printf("Items:        %d (limit %d)\n", st.Count, maxEntries)
	fmt.Printf("Total size:   %d bytes (per-item limit %d)\n", st.TotalBytes, maxBytes)
	fmt.Printf("Average size: %d bytes\n", st.AverageBytes)
	fmt.Printf("Largest item: %d bytes\n", st.MaxItemBytes)
	return nil
}
