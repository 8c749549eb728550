package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/plugin"
	"github.com/odysseus0/slh/internal/store"
)

func newRunCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var all bool
	var days []int
	var parts []int
	var test bool
	var count int

	cmd := &cobra.Command{
		Use:   "run [-- test-args...]",
		Short: "Run solutions and check their answers",
		Long: "Runs the most recent part, or the parts picked with --all, --days and\n" +
			"--parts. A new answer for an unsolved part is submitted right away.\n" +
			"With --test the language's test runner is used instead; arguments after\n" +
			"-- are passed to it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			if len(args) > 0 && !test {
				return fmt.Errorf("%w: extra arguments are only accepted with --test", store.ErrInvalidInput)
			}
			sel := daypart.Selection{All: all, Days: days, Parts: parts}
			if err := validateSelection(sel); err != nil {
				return err
			}

			existing, err := app.plugin.AllDayParts(app.root)
			if err != nil {
				return err
			}
			selections := daypart.Select(existing, sel)
			if len(selections) == 0 {
				return fmt.Errorf("no matching solutions: %w", store.ErrNotFound)
			}

			f := newFlow(app, cmd.OutOrStdout(), cmd.ErrOrStderr(), getOutput())
			if test {
				var out io.Writer = cmd.OutOrStdout()
				if getOutput() == OutputJSON {
					out = cmd.ErrOrStderr()
				}
				code, err := app.plugin.RunTests(cmd.Context(), app.root, selections, args, out)
				if errors.Is(err, plugin.ErrNoTests) {
					return fmt.Errorf("%w: %w", store.ErrInvalidInput, err)
				}
				if err != nil {
					return err
				}
				f.resp.ExitCode = code
				return f.finish()
			}

			if err := f.run(cmd.Context(), selections, count); err != nil {
				return err
			}
			return f.finish()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Run every day")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Days to run (repeatable)")
	cmd.Flags().IntSliceVar(&parts, "parts", nil, "Parts to run (repeatable)")
	cmd.Flags().BoolVar(&test, "test", false, "Run the language's tests instead of the solutions")
	cmd.Flags().IntVar(&count, "count", 1, "Number of runs to average the duration over")
	return cmd
}

func validateSelection(sel daypart.Selection) error {
	for _, d := range sel.Days {
		if d < 1 || d > daypart.LastDay {
			return fmt.Errorf("%w: day %d out of range 1-%d", store.ErrInvalidInput, d, daypart.LastDay)
		}
	}
	for _, p := range sel.Parts {
		if p != 1 && p != 2 {
			return fmt.Errorf("%w: part %d must be 1 or 2", store.ErrInvalidInput, p)
		}
	}
	return nil
}
