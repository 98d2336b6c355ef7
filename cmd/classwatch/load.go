package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/common"
)

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <week>",
		Short: "Load a specific week",
		Long: `Fetch one week, make it the cached week and print the resulting status.
The cache is left untouched when the week cannot be loaded.`,
		Args: cobra.ExactArgs(1),
		RunE: runLoad,
	}
}

func parseWeek(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, common.NewUserError(fmt.Sprintf("week must be a positive number, got %q", arg), common.ErrInvalidConfig)
	}
	return n, nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	n, err := parseWeek(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, nil, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.svc.Load(ctx, n) {
		return common.NewUserError(fmt.Sprintf("week %d could not be loaded", n), common.ErrNoData)
	}

	out := cmd.OutOrStdout()
	writeLine(out, cli.FormatSuccess(fmt.Sprintf("Loaded week %d (%d courses)", n, len(a.svc.Snapshot().Courses))))
	writeLine(out, cli.FormatStatus(a.svc.Status()))
	return nil
}
