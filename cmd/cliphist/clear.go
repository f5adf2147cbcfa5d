package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Clear the saved clipboard history",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runClear(v) },
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	addStoreFlags(cmd)

	return cmd
}

func runClear(v *viper.Viper) error {
	setupLogging(v)

	if !v.GetBool("yes") {
		fmt.Print("Clear all history? (y/N) ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) != "y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	hs, _, err := openStore(v)
	if err != nil {
		return err
	}
	if err := hs.Clear(); err != nil {
		return err
	}
	fmt.Println("History cleared.")
	return nil
}
