package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"herdcl/internal/config"
)

// RunConfig holds per-run options handed to SetupRun.
type RunConfig struct {
	GUIEnabled bool
}

// SetupRun prepares the controller for one run. Prerequisites of a specific
// action are checked when it is resolved, so the front-end can still run
// actions other than the configured one.
func (a *App) SetupRun(ctx context.Context, rc RunConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return errNotLoaded
	}
	run := rc
	a.run = &run
	a.logger.Debug("run set up", "action", a.cfg.Action, "gui_enabled", rc.GUIEnabled)
	return nil
}

// Action resolves the configured action for the current run.
func (a *App) Action() (Action, error) {
	a.mu.Lock()
	kind := Kind(a.cfg.Action)
	a.mu.Unlock()
	return a.ActionFor(kind)
}

// ActionFor resolves a specific action kind for the current run.
func (a *App) ActionFor(kind Kind) (Action, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return nil, errNotLoaded
	}
	if a.run == nil {
		return nil, errNotSetup
	}
	if err := checkPrerequisites(kind, a.cfg); err != nil {
		return nil, err
	}

	cfg := a.cfg
	switch kind {
	case KindSummary:
		return boundAction{kind, func(ctx context.Context) (any, error) { return a.summary(ctx, cfg) }}, nil
	case KindTags:
		return boundAction{kind, func(ctx context.Context) (any, error) { return a.retag(ctx, cfg) }}, nil
	case KindList:
		return boundAction{kind, func(ctx context.Context) (any, error) { return a.list(ctx, cfg) }}, nil
	case KindHealth:
		return boundAction{kind, func(ctx context.Context) (any, error) { return a.health(ctx, cfg) }}, nil
	default:
		return nil, fmt.Errorf("unsupported action %q", kind)
	}
}

func checkPrerequisites(kind Kind, cfg config.Config) error {
	switch kind {
	case KindSummary, KindTags:
		if _, err := os.Stat(cfg.ContentPath); err != nil {
			return fmt.Errorf("content file: %w", err)
		}
	case KindHealth:
		if strings.TrimSpace(cfg.ServiceAddr) == "" {
			return errors.New("service_addr is required for the health action")
		}
	}
	return nil
}
