package cli

import (
	"github.com/spf13/cobra"
)

func newNextCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Create the files for the next puzzle part",
		Long: "Waits for the next part to be released (at most an hour), scaffolds its\n" +
			"solution from the language template and downloads the input and prompt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}
			f := newFlow(app, cmd.OutOrStdout(), cmd.ErrOrStderr(), getOutput())
			if err := f.next(cmd.Context()); err != nil {
				return err
			}
			return f.finish()
		},
	}
}
