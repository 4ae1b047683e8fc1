package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"herdcl/internal/logging"
)

func newLoaded(t *testing.T) *App {
	t.Helper()
	app := New(Options{Logger: logging.Discard()})
	if err := app.LoadConfig(); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	return app
}

func TestLoadConfigInvalidAction(t *testing.T) {
	setupEnv(t, "export")
	app := New(Options{Logger: logging.Discard()})
	err := app.LoadConfig()
	if err == nil || !strings.HasPrefix(err.Error(), "invalid config: unknown action") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	setupEnv(t, "summary")
	app := New(Options{ConfigPath: filepath.Join(t.TempDir(), "nope.json"), Logger: logging.Discard()})
	if err := app.LoadConfig(); err == nil {
		t.Fatal("expected error for missing config file")
	}
	if _, err := app.Config(); !errors.Is(err, errNotLoaded) {
		t.Fatalf("config should stay unloaded, got %v", err)
	}
}

func TestSetupRunRequiresConfig(t *testing.T) {
	app := New(Options{Logger: logging.Discard()})
	if err := app.SetupRun(context.Background(), RunConfig{}); !errors.Is(err, errNotLoaded) {
		t.Fatalf("expected not loaded error, got %v", err)
	}
}

func TestActionMissingContent(t *testing.T) {
	dir := setupEnv(t, "summary")
	t.Setenv("HERDCL_CONTENT", filepath.Join(dir, "absent.yaml"))
	app := newLoaded(t)

	if err := app.SetupRun(context.Background(), RunConfig{}); err != nil {
		t.Fatalf("SetupRun returned error: %v", err)
	}
	_, err := app.Action()
	if err == nil || !strings.HasPrefix(err.Error(), "content file:") || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing content error, got %v", err)
	}
}

func TestSetupRunAllowsOtherKindsWithoutContent(t *testing.T) {
	dir := setupEnv(t, "summary")
	t.Setenv("HERDCL_CONTENT", filepath.Join(dir, "missing.yaml"))
	app := newLoaded(t)

	if err := app.SetupRun(context.Background(), RunConfig{GUIEnabled: true}); err != nil {
		t.Fatalf("SetupRun must not check the configured action: %v", err)
	}
	action, err := app.ActionFor(KindList)
	if err != nil {
		t.Fatalf("ActionFor(list) returned error: %v", err)
	}
	res, err := action.Execute(context.Background())
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if got := res.(ListResult); got.Count != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
	if _, err := app.ActionFor(KindSummary); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("summary should still need the content file, got %v", err)
	}
}

func TestSetupRunCanceledContext(t *testing.T) {
	setupEnv(t, "summary")
	app := newLoaded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.SetupRun(ctx, RunConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
}

func TestActionRequiresSetup(t *testing.T) {
	setupEnv(t, "summary")
	app := newLoaded(t)
	if _, err := app.Action(); !errors.Is(err, errNotSetup) {
		t.Fatalf("expected not set up error, got %v", err)
	}
}

func TestActionResolvesConfiguredKind(t *testing.T) {
	setupEnv(t, "list")
	app := newLoaded(t)
	if err := app.SetupRun(context.Background(), RunConfig{}); err != nil {
		t.Fatalf("SetupRun returned error: %v", err)
	}
	action, err := app.Action()
	if err != nil {
		t.Fatalf("Action returned error: %v", err)
	}
	if action.Kind() != KindList {
		t.Fatalf("expected list action, got %q", action.Kind())
	}
}

func TestActionForUnsupportedKind(t *testing.T) {
	setupEnv(t, "summary")
	app := newLoaded(t)
	if err := app.SetupRun(context.Background(), RunConfig{}); err != nil {
		t.Fatalf("SetupRun returned error: %v", err)
	}
	if _, err := app.ActionFor("export"); err == nil || err.Error() != `unsupported action "export"` {
		t.Fatalf("expected unsupported action error, got %v", err)
	}
}

func TestActionForHealthWithoutAddress(t *testing.T) {
	setupEnv(t, "summary")
	app := newLoaded(t)
	if err := app.SetupRun(context.Background(), RunConfig{GUIEnabled: true}); err != nil {
		t.Fatalf("SetupRun returned error: %v", err)
	}
	if _, err := app.ActionFor(KindHealth); err == nil || !strings.Contains(err.Error(), "service_addr is required") {
		t.Fatalf("expected service_addr error, got %v", err)
	}
}

func TestGUIEnabledToggle(t *testing.T) {
	app := New(Options{})
	if app.GUIEnabled() {
		t.Fatal("controller should start non-interactive")
	}
	app.SetGUIEnabled(true)
	if !app.GUIEnabled() {
		t.Fatal("expected GUIEnabled after toggle")
	}
}

func TestActionsListsEveryKind(t *testing.T) {
	app := New(Options{})
	got := app.Actions()
	want := []Kind{KindSummary, KindTags, KindList, KindHealth}
	if len(got) != len(want) {
		t.Fatalf("expected %d descriptors, got %d", len(want), len(got))
	}
	for i, k := range want {
		if got[i].Kind != k || got[i].Description == "" {
			t.Fatalf("descriptor %d: unexpected %+v", i, got[i])
		}
	}
}
