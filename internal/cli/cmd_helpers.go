package cli

import "fmt"

// requireApp returns the workspace App opened by the root command.
func requireApp(getApp func() *App) (*App, error) {
	app := getApp()
	if app == nil {
		return nil, fmt.Errorf("slh workspace is not open: run inside an aocYYYY repository or pass --root")
	}
	return app, nil
}
