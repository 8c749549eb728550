package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odysseus0/slh/internal/prompt"
	"github.com/odysseus0/slh/internal/store"
)

func newPromptCmd(getLogger func() zerolog.Logger, getOutput func() OutputFormat) *cobra.Command {
	sel := prompt.DaySelector

	cmd := &cobra.Command{
		Use:   "prompt [file]",
		Short: "Convert a saved puzzle page to markdown",
		Long: "Reads an HTML page from file (or stdin) and prints the puzzle description\n" +
			"as markdown. --tag, --attr and --value pick the regions to convert.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sel.Tag == "" {
				return fmt.Errorf("%w: --tag must be non-empty", store.ErrInvalidInput)
			}
			var raw []byte
			var err error
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read page: %w", err)
			}

			log := getLogger()
			doc, err := prompt.Parse(string(raw), prompt.WithSelector(sel), prompt.WithLogger(log))
			if err != nil {
				return err
			}
			if len(doc.Regions) == 0 {
				log.Warn().Str("tag", sel.Tag).Str("attr", sel.Attr).Str("value", sel.Value).Msg("no matching regions")
			}

			out := cmd.OutOrStdout()
			if getOutput() == OutputJSON {
				return writeJSON(out, PromptResponse{Title: doc.Title, Regions: doc.Regions, Markdown: doc.Markdown()})
			}
			_, err = io.WriteString(out, doc.Markdown())
			return err
		},
	}

	cmd.Flags().StringVar(&sel.Tag, "tag", sel.Tag, "Tag of the regions to convert")
	cmd.Flags().StringVar(&sel.Attr, "attr", sel.Attr, "Attribute the regions must carry (empty for any)")
	cmd.Flags().StringVar(&sel.Value, "value", sel.Value, "Value of --attr")
	return cmd
}
