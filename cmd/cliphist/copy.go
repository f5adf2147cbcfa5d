package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy <index>",
		Short: "Copy a history entry back to the system clipboard",
		Long: `Copies the entry at the given index (0 = newest, as printed by
"cliphist history") back to the system clipboard. Rich text and file lists
degrade to their plain-text form.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			return runCopyBack(v, index)
		},
	}

	addStoreFlags(cmd)
	return cmd
}

func runCopyBack(v *viper.Viper, index int) error {
	setupLogging(v)

	svc, err := buildService(v, 0)
	if err != nil {
		return err
	}
	defer svc.Close()

	ok, err := svc.CopyToClipboard(index)
	if err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	if !ok {
		return fmt.Errorf("no item at index %d", index)
	}
	fmt.Printf("Item %d copied to clipboard.\n", index)
	return nil
}
