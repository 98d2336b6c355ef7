package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/quote"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what is happening right now",
		Long: `Load the current week (cached week first, then a scan) and print whether
you are in class, what comes next, or what tomorrow holds.`,
		Example: `  # One-line status
  classwatch status

  # Status plus the whole week
  classwatch status --week

  # Machine-readable
  classwatch status --json`,
		RunE: runStatus,
	}

	cmd.Flags().Bool("week", false, "also print the whole week")
	cmd.Flags().Bool("json", false, "print the status as JSON")
	cmd.Flags().Bool("quote", false, "append the quote of the day")

	return cmd
}

// statusReport is the --json shape.
type statusReport struct {
	Status model.StatusResult `json:"status"`
	Week   int                `json:"week"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	showWeek, _ := cmd.Flags().GetBool("week")
	asJSON, _ := cmd.Flags().GetBool("json")
	withQuote, _ := cmd.Flags().GetBool("quote")

	ctx := cmd.Context()
	a, err := newApp(ctx, nil, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	sel := a.svc.Refresh(ctx)
	if !sel.Found {
		return common.NewUserError(cli.NoDataMessage, common.ErrNoData)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeStatusJSON(out, sel.Week, a.svc.Status())
	}

	writeLine(out, cli.FormatStatus(a.svc.Status()))
	if showWeek {
		writeLine(out, "")
		writeLine(out, cli.RenderWeek(a.svc.Snapshot(), a.svc.Now()))
	}
	if withQuote && a.cfg.QuoteEnabled {
		q := quote.NewClient(a.cfg.QuoteURL, a.cfg.FetchTimeout).Get(ctx)
		writeLine(out, cli.SubtleStyle.Render(q.String()))
	}
	return nil
}

func writeStatusJSON(w io.Writer, week int, status model.StatusResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statusReport{Week: week, Status: status}); err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	return nil
}
