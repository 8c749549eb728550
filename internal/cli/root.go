package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odysseus0/slh/internal/config"
	"github.com/odysseus0/slh/internal/workspace"
)

// Execute loads configuration for the current workspace and runs the root
// command. An interrupt cancels the running command's context.
func Execute() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	dir := cwd
	if root, err := workspace.FindRoot(context.Background(), cwd); err == nil {
		dir = root
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd(cfg).ExecuteContext(ctx)
}

func NewRootCmd(cfg config.Config) *cobra.Command {
	var dbPath string
	var rootDir string
	var output string
	var verbose bool
	var outFmt OutputFormat
	var app *App
	log := zerolog.Nop()

	output = string(OutputTable)

	getApp := func() *App { return app }
	getOutput := func() OutputFormat { return outFmt }
	getLogger := func() zerolog.Logger { return log }

	cmd := &cobra.Command{
		Use:           "slh",
		Short:         "Santa's Little Helper: scripts for Advent of Code",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsedFmt, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			outFmt = parsedFmt
			log = newLogger(cmd.ErrOrStderr(), verbose)
			if !requiresApp(cmd) {
				return nil
			}
			if app != nil {
				return nil
			}
			a, err := NewApp(cmd.Context(), cfg, appOptions{root: rootDir, dbPath: dbPath, log: log})
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite progress database path (default "+cfg.DBPath+" under the workspace root)")
	cmd.PersistentFlags().StringVar(&rootDir, "root", "", "Workspace root (default: top level of the enclosing git repository)")
	cmd.PersistentFlags().StringVarP(&cfg.Language, "language", "l", cfg.Language, "Solution language plugin")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", output, "Output format: table, json")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newNextCmd(getApp, getOutput))
	cmd.AddCommand(newRunCmd(getApp, getOutput))
	cmd.AddCommand(newSubmitCmd(getApp, getOutput))
	cmd.AddCommand(newCalendarCmd(getApp, getOutput))
	cmd.AddCommand(newStatusCmd(getApp, getOutput))
	cmd.AddCommand(newPromptCmd(getLogger, getOutput))

	return cmd
}

func parseOutputFormat(raw string) (OutputFormat, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch OutputFormat(s) {
	case OutputTable, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected table|json)", raw)
	}
}

func requiresApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", "prompt":
			return false
		}
	}
	return true
}
