package cli

import (
	"github.com/spf13/cobra"
)

func newCalendarCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Sync earned stars from the event calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			year, err := app.Year()
			if err != nil {
				return err
			}
			f := newFlow(app, cmd.OutOrStdout(), cmd.ErrOrStderr(), getOutput())
			if err := f.updateCalendar(cmd.Context(), year); err != nil {
				return err
			}
			return f.finish()
		},
	}
}
