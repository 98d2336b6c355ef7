package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/common"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Find the latest published week",
		Long: `Ignore the cached week and try every week from weeks.max down to 1,
loading the first one that is published.`,
		RunE: runScan,
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	var progress *cli.ScanProgress
	onAttempt := func(week int) {
		if progress != nil {
			progress.Attempt(week)
		}
	}

	a, err := newApp(cmd.Context(), nil, onAttempt)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	handler := cli.NewInterruptHandler(out, "Scan stopped.")
	ctx := handler.HandleInterrupts(cmd.Context())

	progress = cli.NewScanProgress(cmd.ErrOrStderr(), a.svc.MaxWeek())
	sel := a.svc.Scan(ctx)
	progress.Finish()

	if handler.WasInterrupted() {
		return nil
	}
	if !sel.Found {
		return common.NewUserError(cli.NoDataMessage, common.ErrNoData)
	}

	writeLine(out, cli.FormatSuccess(fmt.Sprintf("Loaded week %d after %d attempts", sel.Week, sel.Attempts)))
	writeLine(out, cli.FormatStatus(a.svc.Status()))
	return nil
}
