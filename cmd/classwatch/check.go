package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/classwatch/internal/change"
	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/common"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the cached week for changes now",
		Long: `Fetch the cached week bypassing any HTTP cache and compare its fingerprint
with the stored one. A changed week is reloaded.`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx, cli.NewTerminalPresenter(out), nil)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.svc.CheckChanges(ctx)
	if res.Week == 0 {
		return common.NewUserError("nothing cached yet; run classwatch scan first", common.ErrNoCachedWeek)
	}
	writeLine(out, describeCheck(res))
	return nil
}

func describeCheck(r change.Result) string {
	switch {
	case !r.Checked:
		return cli.FormatError(fmt.Sprintf("Could not fetch week %d", r.Week))
	case r.Changed && r.Reloaded:
		return cli.FormatSuccess(fmt.Sprintf("Week %d changed (%s → %s) and was reloaded", r.Week, r.OldFingerprint, r.NewFingerprint))
	case r.Changed:
		return cli.FormatWarning(fmt.Sprintf("Week %d changed but could not be reloaded", r.Week))
	default:
		return cli.FormatSuccess(fmt.Sprintf("Week %d is up to date", r.Week))
	}
}
