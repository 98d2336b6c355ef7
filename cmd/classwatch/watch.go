package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/config"
	"github.com/Veraticus/classwatch/internal/live"
	"github.com/Veraticus/classwatch/internal/quote"
	"github.com/Veraticus/classwatch/internal/tui"
)

// toggleDelay is how long the week/status view transition takes.
const toggleDelay = 300 * time.Millisecond

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep a live status on screen",
		Long: `Start the live view. The status refreshes every status.interval, the
schedule is re-selected on weekends, and the cached week is checked for
changes around each poll checkpoint on workdays.

With --plain, status lines are printed as they change instead of drawing
a full-screen view.`,
		RunE: runWatch,
	}

	cmd.Flags().Bool("plain", false, "print status lines instead of the full-screen view")
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin)")
	cmd.Flags().String("log-file", "", "log file for the full-screen view (default: <config dir>/watch.log)")

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	if plain {
		return runWatchPlain(cmd)
	}
	return runWatchView(cmd)
}

func runWatchPlain(cmd *cobra.Command) error {
	ctx := cmd.Context()
	presenter := cli.NewTerminalPresenter(cmd.OutOrStdout())

	a, err := newApp(ctx, presenter, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	<-ctx.Done()
	return nil
}

func runWatchView(cmd *cobra.Command) error {
	ctx := cmd.Context()
	themeName, _ := cmd.Flags().GetString("theme")
	logFile, _ := cmd.Flags().GetString("log-file")

	closeLog, err := redirectLogs(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	bridge := tui.NewBridge()
	a, err := newApp(ctx, bridge, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := tui.Options{ThemeName: themeName, AltScreen: true}
	if a.cfg.QuoteEnabled {
		client := quote.NewClient(a.cfg.QuoteURL, a.cfg.FetchTimeout)
		opts.Quote = func(ctx context.Context) string {
			return client.Get(ctx).String()
		}
	}

	toggle := live.NewToggle(a.svc.Scheduler(), toggleDelay)
	return tui.Run(ctx, a.svc, bridge, toggle, opts)
}

// redirectLogs points the logger at a file so log lines do not tear the
// full-screen view.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		path = filepath.Join(config.DefaultDir(), "watch.log")
	}
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // User-supplied log path
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := common.SetupLoggerTo(f, level, viper.GetString(config.KeyLogFormat)); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		_ = common.SetupLogger(level, viper.GetString(config.KeyLogFormat))
		_ = f.Close()
	}, nil
}
