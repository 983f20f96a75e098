// Package config loads service configuration from the environment, layered
// over an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceSQLite = "sqlite"
	SourceDir    = "dir"
	SourceRemote = "remote"
)

// Config holds service configuration.
type Config struct {
	Addr         string        // FORMBRIDGE_ADDR, default ":8080"
	BasePath     string        // FORMBRIDGE_BASE_PATH, default "/wp-json"
	Source       string        // FORMBRIDGE_SOURCE, default "sqlite"
	DBPath       string        // FORMBRIDGE_DB, default "formbridge.db"
	FormsDir     string        // FORMBRIDGE_FORMS_DIR, optional
	RemoteURL    string        // FORMBRIDGE_REMOTE_URL
	RemoteKey    string        // FORMBRIDGE_REMOTE_KEY
	RemoteSecret string        // FORMBRIDGE_REMOTE_SECRET
	Timeout      time.Duration // FORMBRIDGE_TIMEOUT, default 10s
	Sanitize     bool          // FORMBRIDGE_SANITIZE
	VisibleOnly  bool          // FORMBRIDGE_VISIBLE_ONLY, drop non-visible fields
	LogLevel     slog.Level    // FORMBRIDGE_LOG_LEVEL, default info
}

type fileConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"basePath"`
	Source   string `yaml:"source"`
	DBPath   string `yaml:"db"`
	FormsDir string `yaml:"formsDir"`
	Remote   struct {
		URL    string `yaml:"url"`
		Key    string `yaml:"key"`
		Secret string `yaml:"secret"`
	} `yaml:"remote"`
	Timeout     string `yaml:"timeout"`
	Sanitize    *bool  `yaml:"sanitize"`
	VisibleOnly *bool  `yaml:"visibleOnly"`
	LogLevel    string `yaml:"logLevel"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Addr:     ":8080",
		BasePath: "/wp-json",
		Source:   SourceSQLite,
		DBPath:   "formbridge.db",
		Timeout:  10 * time.Second,
		LogLevel: slog.LevelInfo,
	}
}

// Load reads the YAML file named by FORMBRIDGE_CONFIG, if any, then applies
// environment overrides and validates the result.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("FORMBRIDGE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := applyFile(&cfg, data); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, data []byte) error {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	setString(&cfg.Addr, file.Addr)
	setString(&cfg.BasePath, file.BasePath)
	setString(&cfg.Source, file.Source)
	setString(&cfg.DBPath, file.DBPath)
	setString(&cfg.FormsDir, file.FormsDir)
	setString(&cfg.RemoteURL, file.Remote.URL)
	setString(&cfg.RemoteKey, file.Remote.Key)
	setString(&cfg.RemoteSecret, file.Remote.Secret)
	if file.Sanitize != nil {
		cfg.Sanitize = *file.Sanitize
	}
	if file.VisibleOnly != nil {
		cfg.VisibleOnly = *file.VisibleOnly
	}
	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	if file.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(file.LogLevel)); err != nil {
			return fmt.Errorf("logLevel: %w", err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Addr, os.Getenv("FORMBRIDGE_ADDR"))
	setString(&cfg.BasePath, os.Getenv("FORMBRIDGE_BASE_PATH"))
	setString(&cfg.Source, os.Getenv("FORMBRIDGE_SOURCE"))
	setString(&cfg.DBPath, os.Getenv("FORMBRIDGE_DB"))
	setString(&cfg.FormsDir, os.Getenv("FORMBRIDGE_FORMS_DIR"))
	setString(&cfg.RemoteURL, os.Getenv("FORMBRIDGE_REMOTE_URL"))
	setString(&cfg.RemoteKey, os.Getenv("FORMBRIDGE_REMOTE_KEY"))
	setString(&cfg.RemoteSecret, os.Getenv("FORMBRIDGE_REMOTE_SECRET"))

	if raw := os.Getenv("FORMBRIDGE_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("config: FORMBRIDGE_TIMEOUT: %w", err)
		}
		cfg.Timeout = timeout
	}
	if err := envBool(&cfg.Sanitize, "FORMBRIDGE_SANITIZE"); err != nil {
		return err
	}
	if err := envBool(&cfg.VisibleOnly, "FORMBRIDGE_VISIBLE_ONLY"); err != nil {
		return err
	}
	if raw := os.Getenv("FORMBRIDGE_LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return fmt.Errorf("config: FORMBRIDGE_LOG_LEVEL: %w", err)
		}
	}
	return nil
}

// Validate checks that the chosen source has what it needs.
func (c Config) Validate() error {
	switch c.Source {
	case SourceSQLite:
		if c.DBPath == "" {
			return errors.New("config: sqlite source requires FORMBRIDGE_DB")
		}
	case SourceDir:
		if c.FormsDir == "" {
			return errors.New("config: dir source requires FORMBRIDGE_FORMS_DIR")
		}
	case SourceRemote:
		if c.RemoteURL == "" {
			return errors.New("config: remote source requires FORMBRIDGE_REMOTE_URL")
		}
	default:
		return fmt.Errorf("config: unknown source %q", c.Source)
	}
	if c.Timeout < 0 {
		return errors.New("config: timeout must not be negative")
	}
	return nil
}

func envBool(dst *bool, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = enabled
	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
