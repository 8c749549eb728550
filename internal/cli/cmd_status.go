package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/odysseus0/slh/internal/daypart"
	"github.com/odysseus0/slh/internal/model"
	"github.com/odysseus0/slh/internal/store"
)

func newStatusCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var limit int
	var day int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show stars, guesses and recent submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			stats, err := app.store.GetStats(ctx)
			if err != nil {
				return fmt.Errorf("get stats: %w", err)
			}
			days, err := app.store.DayStatuses(ctx)
			if err != nil {
				return fmt.Errorf("get day status: %w", err)
			}
			recent, err := app.store.ListSubmissions(ctx, limit)
			if err != nil {
				return fmt.Errorf("list submissions: %w", err)
			}
			var guesses []model.Guess
			if cmd.Flags().Changed("day") {
				if day < 1 || day > daypart.LastDay {
					return fmt.Errorf("%w: day %d out of range 1-%d", store.ErrInvalidInput, day, daypart.LastDay)
				}
				for part := 1; part <= daypart.LastPart; part++ {
					gs, err := app.store.ListGuesses(ctx, daypart.DayPart{Day: day, Part: part})
					if err != nil {
						return fmt.Errorf("list guesses: %w", err)
					}
					guesses = append(guesses, gs...)
				}
			}

			out := cmd.OutOrStdout()
			if getOutput() == OutputJSON {
				return writeJSON(out, StatusResponse{Stats: stats, Days: days, Recent: recent, Guesses: guesses})
			}

			writeStatsTable(out, stats)
			active := make([]DayStatus, 0, len(days))
			for _, d := range days {
				if d.Stars > 0 || d.Guesses > 0 {
					active = append(active, d)
				}
			}
			if len(active) > 0 {
				fmt.Fprintln(out)
				writeDaysTable(out, active)
			}
			if len(recent) > 0 {
				fmt.Fprintln(out)
				writeSubmissionsTable(out, recent)
			}
			if len(guesses) > 0 {
				fmt.Fprintln(out)
				writeGuessesTable(out, guesses)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Number of recent submissions to show")
	cmd.Flags().IntVar(&day, "day", 0, "Also list every answer produced for this day")
	return cmd
}

func writeSubmissionsTable(out io.Writer, subs []model.Submission) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tPART\tANSWER\tVERDICT\tWHEN")
	for _, s := range subs {
		when := s.SubmittedAt
		fmt.Fprintf(tw, "%02d\t%d\t%s\t%s\t%s\n", s.Day, s.Part, s.Answer, s.Verdict, humanAgo(&when))
	}
	_ = tw.Flush()
}

func writeGuessesTable(out io.Writer, guesses []model.Guess) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PART\tGUESS\tWHEN")
	for _, g := range guesses {
		when := g.CreatedAt
		fmt.Fprintf(tw, "%d\t%s\t%s\n", g.Part, g.Answer, humanAgo(&when))
	}
	_ = tw.Flush()
}
