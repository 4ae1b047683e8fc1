package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	defaultAction      = "summary"
	defaultEnvironment = "dev"
	defaultContentPath = "content.yaml"
	defaultTimeout     = 5 * time.Second
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"

	// EnvConfigPath names the variable used to locate the config file.
	EnvConfigPath = "HERDCL_CONFIG"
	// DefaultConfigFile is picked up from the working directory when present.
	DefaultConfigFile = "herdcl.json"

	envAction      = "HERDCL_ACTION"
	envEnvironment = "HERDCL_ENV"
	envContentPath = "HERDCL_CONTENT"
	envCatalogPath = "HERDCL_CATALOG"
	envServiceAddr = "HERDCL_SERVICE_ADDR"
	envServiceName = "HERDCL_SERVICE_NAME"
	envTimeout     = "HERDCL_TIMEOUT"
	envLogLevel    = "HERDCL_LOG_LEVEL"
	envLogFormat   = "HERDCL_LOG_FORMAT"
)

// Actions lists the action kinds the loader knows how to run.
var Actions = []string{"summary", "tags", "list", "health"}

// Config aggregates everything a content loader run needs.
type Config struct {
	Action      string
	Environment string
	ContentPath string
	CatalogPath string
	ServiceAddr string
	ServiceName string
	Timeout     time.Duration
	FilterTags  []string
	LogLevel    string
	LogFormat   string
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Action:      defaultAction,
		Environment: defaultEnvironment,
		ContentPath: defaultContentPath,
		Timeout:     defaultTimeout,
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
	}
}

// ResolvePath picks the config file: HERDCL_CONFIG first, then herdcl.json in
// the working directory. Returns "" when neither is available.
func ResolvePath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Load builds a Config from an optional JSON file path plus environment
// overrides. Ignored overrides are reported to logger, which may be nil.
func Load(path string, logger *slog.Logger) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		merge(&cfg, fileCfg)
	}

	if err := applyEnvOverrides(&cfg, logger); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first inconsistency in cfg.
func (c Config) Validate() error {
	if !knownAction(c.Action) {
		return fmt.Errorf("unknown action %q (expected one of %s)", c.Action, strings.Join(Actions, ", "))
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	if c.Action == "health" && strings.TrimSpace(c.ServiceAddr) == "" {
		return errors.New("service_addr is required for the health action")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}

func knownAction(name string) bool {
	for _, a := range Actions {
		if a == name {
			return true
		}
	}
	return false
}

func merge(dst *Config, src Config) {
	if src.Action != "" {
		dst.Action = src.Action
	}
	if src.Environment != "" {
		dst.Environment = src.Environment
	}
	if src.ContentPath != "" {
		dst.ContentPath = src.ContentPath
	}
	if src.CatalogPath != "" {
		dst.CatalogPath = src.CatalogPath
	}
	if src.ServiceAddr != "" {
		dst.ServiceAddr = src.ServiceAddr
	}
	if src.ServiceName != "" {
		dst.ServiceName = src.ServiceName
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if len(src.FilterTags) > 0 {
		dst.FilterTags = append([]string(nil), src.FilterTags...)
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
}

func applyEnvOverrides(cfg *Config, logger *slog.Logger) error {
	strOverrides := []struct {
		env string
		dst *string
	}{
		{envAction, &cfg.Action},
		{envEnvironment, &cfg.Environment},
		{envContentPath, &cfg.ContentPath},
		{envCatalogPath, &cfg.CatalogPath},
		{envServiceAddr, &cfg.ServiceAddr},
		{envServiceName, &cfg.ServiceName},
		{envLogLevel, &cfg.LogLevel},
		{envLogFormat, &cfg.LogFormat},
	}
	for _, o := range strOverrides {
		if v := strings.TrimSpace(os.Getenv(o.env)); v != "" {
			*o.dst = v
		}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if v := os.Getenv(envTimeout); v != "" {
		dur, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", envTimeout, v, err)
		}
		if dur <= 0 {
			if logger != nil {
				logger.Warn("ignoring non-positive timeout override", "env", envTimeout, "value", v)
			}
			return nil
		}
		cfg.Timeout = dur
	}
	return nil
}

type fileConfig struct {
	Action      string   `json:"action"`
	Environment string   `json:"environment"`
	ContentPath string   `json:"content_path"`
	CatalogPath string   `json:"catalog_path"`
	ServiceAddr string   `json:"service_addr"`
	ServiceName string   `json:"service_name"`
	Timeout     string   `json:"timeout"`
	FilterTags  []string `json:"filter_tags"`
	LogLevel    string   `json:"log_level"`
	LogFormat   string   `json:"log_format"`
}

func loadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	cfg = Config{
		Action:      strings.TrimSpace(raw.Action),
		Environment: strings.TrimSpace(raw.Environment),
		ContentPath: strings.TrimSpace(raw.ContentPath),
		CatalogPath: strings.TrimSpace(raw.CatalogPath),
		ServiceAddr: strings.TrimSpace(raw.ServiceAddr),
		ServiceName: strings.TrimSpace(raw.ServiceName),
		FilterTags:  raw.FilterTags,
		LogLevel:    strings.TrimSpace(raw.LogLevel),
		LogFormat:   strings.TrimSpace(raw.LogFormat),
	}
	if raw.Timeout != "" {
		dur, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parse timeout: %w", err)
		}
		if dur <= 0 {
			return cfg, errors.New("timeout must be > 0")
		}
		cfg.Timeout = dur
	}

	return cfg, nil
}
