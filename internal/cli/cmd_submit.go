package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odysseus0/slh/internal/store"
)

func newSubmitCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Submit the answer of the most recent part",
		Long: "Submits the stored answer of the most recent part. A solution edited since\n" +
			"its answer was stored is run again first. A right answer locks the part,\n" +
			"refreshes the calendar and moves on to the next part.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			f := newFlow(app, cmd.OutOrStdout(), cmd.ErrOrStderr(), getOutput())
			latest, ok, err := f.latest()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no solutions yet, run `slh next` first: %w", store.ErrNotFound)
			}
			if err := f.submit(cmd.Context(), latest); err != nil {
				return err
			}
			return f.finish()
		},
	}
}
