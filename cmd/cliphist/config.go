package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MegoCs/clipboard-history/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPHIST_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPHIST_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("cliphist")
		v.SetConfigType("toml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/cliphist", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPHIST")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file")
}

// addStoreFlags adds the flags shared by every command that opens the
// history store.
func addStoreFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("data-file", "", "history file path (default: per-user config dir)")
	f.Int("max-history", 0, "maximum number of history entries (default 1000)")
	f.Int("max-content-size", 0, "maximum entry size in bytes (default 10MiB)")
	f.String("log-format", "auto", "log format: auto, text, json")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	addConfigFlag(cmd)
}

// setupLogging configures the global slog logger from resolved config.
func setupLogging(v *viper.Viper) {
	logging.Setup(
		logging.ParseFormat(v.GetString("log-format")),
		logging.ParseLevel(v.GetString("log-level")),
	)
}
