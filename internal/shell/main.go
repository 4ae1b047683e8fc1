package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DefaultVersion is shown in the interactive window title.
const DefaultVersion = "20191112"

// Frontend is an interactive front-end bound to a controller.
type Frontend interface {
	SetTitle(title string)
	// Start blocks until the user closes the front-end.
	Start() error
}

// FrontendFactory builds the front-end. It is only called on the interactive path.
type FrontendFactory func(Controller) (Frontend, error)

// Options configures Main.
type Options struct {
	Controller  Controller
	Logger      *slog.Logger
	Console     bool
	NewFrontend FrontendFactory
	Version     string
	// Progress is shown during a console run, once the config has loaded.
	Progress Progress
}

// Main builds the shell and runs the selected mode. Configuration errors are
// returned untouched. A failed console run comes back as *RunFailedError.
func Main(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sh, err := New(opts.Controller, logger)
	if err != nil {
		return err
	}

	if opts.Console {
		logger.Info("Command Line Mode")
		if opts.Progress != nil {
			sh.SetProgress(opts.Progress)
		}
		out := sh.Run(ctx)
		if !out.OK() {
			return &RunFailedError{Outcome: out}
		}
		return nil
	}

	sh.ctrl.SetGUIEnabled(true)
	if opts.NewFrontend == nil {
		return errors.New("interactive front-end is not available; rerun with --console")
	}
	fe, err := opts.NewFrontend(sh.ctrl)
	if err != nil {
		return fmt.Errorf("build front-end: %w", err)
	}
	logger.Info("Starting App")
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	fe.SetTitle(WindowTitle(version))
	return fe.Start()
}

// WindowTitle formats the interactive window title for version.
func WindowTitle(version string) string {
	return "Herd Content Loader  v." + version
}
