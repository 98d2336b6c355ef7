package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/config"
	"github.com/Veraticus/classwatch/internal/export"
	"github.com/Veraticus/classwatch/internal/model"
)

// Export formats.
const (
	formatCSV = "csv"
	formatICS = "ics"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a week as CSV or iCalendar",
		Long: `Export the current week, or the week given with --week, as a CSV table or
an iCalendar file. iCalendar export needs the first Monday of term, set with
--term-start or export.term_start.`,
		Example: `  # CSV to stdout
  classwatch export

  # Week 7 as a calendar file
  classwatch export --week 7 --format ics --term-start 2025-02-24 -o week7.ics`,
		RunE: runExport,
	}

	cmd.Flags().String("format", formatCSV, "output format (csv, ics)")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().Int("week", 0, "week to export (default: current week)")
	cmd.Flags().Bool("bom", true, "prefix CSV output with a UTF-8 byte order mark")
	cmd.Flags().String("term-start", "", "first Monday of term, YYYY-MM-DD")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	weekNum, _ := cmd.Flags().GetInt("week")
	bom, _ := cmd.Flags().GetBool("bom")
	termStartFlag, _ := cmd.Flags().GetString("term-start")

	format = strings.ToLower(format)
	if format != formatCSV && format != formatICS {
		return common.NewUserError(fmt.Sprintf("unknown export format %q (use csv or ics)", format), common.ErrInvalidConfig)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, nil, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	termStart := a.cfg.TermStart
	if termStartFlag != "" {
		termStart, err = time.ParseInLocation("2006-01-02", termStartFlag, time.Local)
		if err != nil {
			return common.NewUserError("--term-start must be YYYY-MM-DD", err)
		}
	}

	if weekNum > 0 {
		if !a.svc.Load(ctx, weekNum) {
			return common.NewUserError(fmt.Sprintf("week %d could not be loaded", weekNum), common.ErrNoData)
		}
	} else if sel := a.svc.Refresh(ctx); !sel.Found {
		return common.NewUserError(cli.NoDataMessage, common.ErrNoData)
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(config.ExpandPath(output))
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Warn("Failed to close export file", "error", closeErr)
			}
		}()
		w = f
	}

	snap := a.svc.Snapshot()
	if err := writeExport(w, snap, format, termStart, bom); err != nil {
		if errors.Is(err, common.ErrMissingConfig) {
			return common.NewUserError("iCalendar export needs --term-start or export.term_start", err)
		}
		return err
	}

	if output != "" {
		writeLine(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Exported week %d (%d courses) to %s", snap.WeekNumber, len(snap.Courses), output)))
	}
	return nil
}

func writeExport(w io.Writer, snap *model.WeekSnapshot, format string, termStart time.Time, bom bool) error {
	switch format {
	case formatCSV:
		return export.WriteCSV(w, snap, export.CSVOptions{BOM: bom})
	case formatICS:
		return export.WriteICS(w, snap, termStart)
	default:
		return fmt.Errorf("%w: unknown export format %q", common.ErrInvalidConfig, format)
	}
}
