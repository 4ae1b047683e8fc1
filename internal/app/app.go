package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"herdcl/internal/catalog"
	"herdcl/internal/config"
)

// Options configures the top-level controller.
type Options struct {
	// ConfigPath points to the optional loader config file.
	ConfigPath string
	// Logger receives controller diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// App is the content loader controller shared by the console shell and the TUI.
type App struct {
	cfgPath string
	logger  *slog.Logger

	mu         sync.Mutex
	cfg        config.Config
	loaded     bool
	catalog    *catalog.Catalog
	guiEnabled bool
	run        *RunConfig
}

// New constructs the controller. Nothing is read from disk until LoadConfig.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfgPath: opts.ConfigPath,
		logger:  logger,
	}
}

// ConfigPath returns the configured config file path (if any).
func (a *App) ConfigPath() string {
	return a.cfgPath
}

// LoadConfig reads and validates the configuration and opens the catalog.
func (a *App) LoadConfig() error {
	cfg, err := config.Load(a.cfgPath, a.logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cat, err := catalog.New(cfg.CatalogPath, a.logger)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg = cfg
	a.catalog = cat
	a.loaded = true
	a.run = nil
	a.mu.Unlock()

	a.logger.Debug("config loaded", "path", a.cfgPath, "action", cfg.Action, "environment", cfg.Environment)
	return nil
}

// Config returns a copy of the loaded configuration.
func (a *App) Config() (config.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return config.Config{}, errNotLoaded
	}
	return a.cfg, nil
}

// Catalog exposes the loaded catalog, or nil before LoadConfig.
func (a *App) Catalog() *catalog.Catalog {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog
}

// GUIEnabled reports whether the controller runs behind the interactive front-end.
func (a *App) GUIEnabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.guiEnabled
}

// SetGUIEnabled marks the controller as interactive.
func (a *App) SetGUIEnabled(enabled bool) {
	a.mu.Lock()
	a.guiEnabled = enabled
	a.mu.Unlock()
}

var (
	errNotLoaded = errors.New("config not loaded")
	errNotSetup  = errors.New("run not set up")
)
