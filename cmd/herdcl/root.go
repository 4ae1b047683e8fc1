package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"herdcl/internal/app"
	"herdcl/internal/config"
	"herdcl/internal/logging"
	"herdcl/internal/shell"
	"herdcl/internal/tui"
)

// version is stamped into the window title; override with -ldflags "-X main.version=...".
var version = shell.DefaultVersion

var consoleMode bool

func init() {
	rootCmd.Flags().BoolVarP(&consoleMode, "console", "c", false, "Command Line Mode")
}

var (
	controllerFactory = func(configPath string, logger *slog.Logger) shell.Controller {
		return app.New(app.Options{ConfigPath: configPath, Logger: logger})
	}
	frontendFactory shell.FrontendFactory = newFrontend
)

func newFrontend(c shell.Controller) (shell.Frontend, error) {
	ctrl, ok := c.(tui.Controller)
	if !ok {
		return nil, fmt.Errorf("controller %T cannot drive the interactive front-end", c)
	}
	return tui.NewFrontend(ctrl), nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := config.ResolvePath()
	logger := newLogger(configPath, cmd.ErrOrStderr())

	opts := shell.Options{
		Controller:  controllerFactory(configPath, logger),
		Logger:      logger,
		Console:     consoleMode,
		NewFrontend: frontendFactory,
		Version:     version,
	}
	if consoleMode {
		opts.Progress = newSpinner(cmd.OutOrStdout())
	}
	return shell.Main(ctx, opts)
}

// newLogger reads only the logging settings. A broken config falls back to
// info/text here; the controller reports the real error and any warnings when
// it loads the config with this logger.
func newLogger(configPath string, w io.Writer) *slog.Logger {
	cfg, err := config.Load(configPath, nil)
	if err != nil {
		cfg = config.Default()
	}
	return logging.New(cfg.LogLevel, cfg.LogFormat, w)
}

// newSpinner builds the console progress indicator. The shell starts it once
// the config is loaded and stops it before logging the result. It stays
// silent when stdout is not a terminal.
func newSpinner(w io.Writer) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " Loading content..."
	return s
}
