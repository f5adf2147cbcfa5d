package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MegoCs/clipboard-history/internal/monitor"
	"github.com/MegoCs/clipboard-history/internal/ui"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the clipboard monitor with an interactive console",
		Long: `Starts the background clipboard monitor and an interactive console menu.

The monitor polls the system clipboard, records every change into the
bounded history, and persists the history after each change. The console
lists history, searches it, and copies entries back to the clipboard.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runRun(v) },
	}

	f := cmd.Flags()
	f.Duration("poll-interval", monitor.DefaultPollInterval, "clipboard poll interval")
	addStoreFlags(cmd)

	return cmd
}

func runRun(v *viper.Viper) error {
	setupLogging(v)

	svc, err := buildService(v, v.GetDuration("poll-interval"))
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub := svc.StartMonitoring(ctx)
	if sub != nil {
		defer sub.Cancel()
		go logEvents(ctx, sub)
	}

	return ui.New(svc, os.Stdin, os.Stdout).Run()
}

// logEvents drains a monitor subscription into the log. The console is the
// primary surface; this keeps failures observable even when nobody is
// looking at the menu.
func logEvents(ctx context.Context, sub *monitor.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-sub.C:
			switch ev.Kind {
			case monitor.Started:
				slog.Debug("monitor event", "kind", ev.Kind)
			case monitor.ItemAdded:
				slog.Debug("monitor event",
					"kind", ev.Kind,
					"type", ev.Entry.TypeName(),
					"bytes", ev.Entry.EstimatedSize(),
				)
			case monitor.Error:
				slog.Warn("monitor event", "kind", ev.Kind, "err", ev.Err)
			}
		}
	}
}
