package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"herdcl/internal/app"
)

const (
	completedBanner = "-- RUN COMPLETED ---"
	failedBanner    = "-- RUN FAILURES ---"
)

// Controller is the subset of app.App behaviour the shell drives.
type Controller interface {
	LoadConfig() error
	SetupRun(ctx context.Context, rc app.RunConfig) error
	Action() (app.Action, error)
	GUIEnabled() bool
	SetGUIEnabled(enabled bool)
}

// Progress is a busy indicator shown while a console run is in flight.
// Stop may be called more than once.
type Progress interface {
	Start()
	Stop()
}

// Shell owns one controller and the logger used to report runs.
type Shell struct {
	ctrl     Controller
	logger   *slog.Logger
	progress Progress
}

// New loads the controller's configuration right away. A load failure is
// returned unchanged; there is no point choosing a mode with a broken config.
func New(ctrl Controller, logger *slog.Logger) (*Shell, error) {
	if ctrl == nil {
		return nil, errors.New("shell: controller is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := ctrl.LoadConfig(); err != nil {
		return nil, err
	}
	return &Shell{ctrl: ctrl, logger: logger}, nil
}

// SetProgress installs an indicator that Run shows until it reports.
func (s *Shell) SetProgress(p Progress) {
	s.progress = p
}

// Controller returns the controller the shell was built with.
func (s *Shell) Controller() Controller {
	return s.ctrl
}

// Run performs a single non-interactive run: setup, resolve the action,
// execute it once. Failures, panics included, are logged and folded into
// the returned Outcome; Run itself never fails.
func (s *Shell) Run(ctx context.Context) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			kind := out.Action
			out = s.fail(StagePanic, fmt.Errorf("panic: %v", r), debug.Stack())
			out.Action = kind
		}
	}()
	if s.progress != nil {
		s.progress.Start()
		defer s.progress.Stop()
	}

	if err := s.ctrl.SetupRun(ctx, app.RunConfig{GUIEnabled: false}); err != nil {
		return s.fail(StageSetup, err, nil)
	}

	action, err := s.ctrl.Action()
	if err != nil {
		return s.fail(StageAction, err, nil)
	}
	if action == nil {
		return s.fail(StageAction, errors.New("controller returned no action"), nil)
	}
	out.Action = action.Kind()

	result, err := action.Execute(ctx)
	if err != nil {
		failed := s.fail(StageExecute, err, nil)
		failed.Action = out.Action
		return failed
	}

	pretty, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		failed := s.fail(StageEncode, fmt.Errorf("encode result: %w", err), nil)
		failed.Action = out.Action
		return failed
	}

	out.Result = result
	out.JSON = string(pretty)
	s.stopProgress()
	s.logger.Info("action result", "action", string(out.Action), "result", out.JSON)
	s.logger.Info(completedBanner)
	return out
}

func (s *Shell) stopProgress() {
	if s.progress != nil {
		s.progress.Stop()
	}
}

func (s *Shell) fail(stage Stage, err error, stack []byte) Outcome {
	s.stopProgress()
	attrs := []any{"stage", string(stage), "err", err}
	if len(stack) > 0 {
		attrs = append(attrs, "stack", string(stack))
	}
	s.logger.Error("run failed", attrs...)
	s.logger.Info(failedBanner)
	return Outcome{Stage: stage, Err: err}
}
