package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"herdcl/internal/app"
	"herdcl/internal/shell"
)

type stubAction struct{}

func (stubAction) Kind() app.Kind { return app.KindSummary }

func (stubAction) Execute(context.Context) (any, error) {
	return map[string]string{"status": "ok"}, nil
}

type stubController struct {
	loadErr  error
	setupErr error
	runs     int
	gui      bool
}

func (s *stubController) LoadConfig() error { return s.loadErr }

func (s *stubController) SetupRun(ctx context.Context, rc app.RunConfig) error {
	s.runs++
	return s.setupErr
}

func (s *stubController) Action() (app.Action, error) { return stubAction{}, nil }

func (s *stubController) GUIEnabled() bool { return s.gui }

func (s *stubController) SetGUIEnabled(enabled bool) { s.gui = enabled }

type stubFrontend struct {
	title   string
	started bool
}

func (f *stubFrontend) SetTitle(title string) { f.title = title }

func (f *stubFrontend) Start() error {
	f.started = true
	return nil
}

func withController(t *testing.T, stub shell.Controller) {
	t.Helper()
	orig := controllerFactory
	controllerFactory = func(string, *slog.Logger) shell.Controller {
		return stub
	}
	t.Cleanup(func() {
		controllerFactory = orig
	})
}

func withFrontend(t *testing.T, fe *stubFrontend, built *int) {
	t.Helper()
	orig := frontendFactory
	frontendFactory = func(shell.Controller) (shell.Frontend, error) {
		*built++
		return fe, nil
	}
	t.Cleanup(func() {
		frontendFactory = orig
	})
}

func withConsole(t *testing.T, console bool) {
	t.Helper()
	orig := consoleMode
	consoleMode = console
	t.Cleanup(func() { consoleMode = orig })
}

func withOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("HERDCL_CONFIG", "")
	buf := &bytes.Buffer{}
	origErr := rootCmd.ErrOrStderr()
	origOut := rootCmd.OutOrStdout()
	rootCmd.SetErr(buf)
	rootCmd.SetOut(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetErr(origErr)
		rootCmd.SetOut(origOut)
	})
	return buf
}

func TestConsoleFlagRegistered(t *testing.T) {
	flag := rootCmd.Flags().Lookup("console")
	if flag == nil {
		t.Fatal("expected --console flag")
	}
	if flag.Shorthand != "c" || flag.DefValue != "false" {
		t.Fatalf("unexpected flag definition: shorthand=%q default=%q", flag.Shorthand, flag.DefValue)
	}
}

func TestConsoleRun(t *testing.T) {
	ctrl := &stubController{}
	built := 0
	withController(t, ctrl)
	withFrontend(t, &stubFrontend{}, &built)
	withConsole(t, true)
	logs := withOutput(t)

	if err := rootCmd.RunE(rootCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if built != 0 {
		t.Fatal("console mode must not build the front-end")
	}
	if ctrl.runs != 1 {
		t.Fatalf("expected one run, got %d", ctrl.runs)
	}
	for _, want := range []string{"Command Line Mode", "RUN COMPLETED"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("expected %q in logs:\n%s", want, logs.String())
		}
	}
}

func TestConsoleRunFailure(t *testing.T) {
	withController(t, &stubController{setupErr: errors.New("no content")})
	withConsole(t, true)
	logs := withOutput(t)

	err := rootCmd.RunE(rootCmd, nil)
	var runErr *shell.RunFailedError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunFailedError, got %v", err)
	}
	if !strings.Contains(logs.String(), "RUN FAILURES") {
		t.Fatalf("expected failure banner in logs:\n%s", logs.String())
	}
}

func TestInteractiveRun(t *testing.T) {
	ctrl := &stubController{}
	fe := &stubFrontend{}
	built := 0
	withController(t, ctrl)
	withFrontend(t, fe, &built)
	withConsole(t, false)
	withOutput(t)

	if err := rootCmd.RunE(rootCmd, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if built != 1 || !fe.started {
		t.Fatalf("expected front-end to be built and started, built=%d started=%t", built, fe.started)
	}
	if !ctrl.gui {
		t.Fatal("expected controller to be marked interactive")
	}
	if ctrl.runs != 0 {
		t.Fatal("interactive mode must not run the console path")
	}
	if fe.title != shell.WindowTitle(version) {
		t.Fatalf("unexpected title %q", fe.title)
	}
}

func TestConfigErrorIsReturned(t *testing.T) {
	loadErr := errors.New("bad config")
	withController(t, &stubController{loadErr: loadErr})
	withConsole(t, true)
	withOutput(t)

	if err := rootCmd.RunE(rootCmd, nil); !errors.Is(err, loadErr) {
		t.Fatalf("expected %v, got %v", loadErr, err)
	}
}

func TestNewFrontendRejectsForeignController(t *testing.T) {
	if _, err := newFrontend(&stubController{}); err == nil {
		t.Fatal("expected error for a controller without action listing")
	}
	fe, err := newFrontend(app.New(app.Options{}))
	if err != nil || fe == nil {
		t.Fatalf("expected front-end for app controller, got %v", err)
	}
}
