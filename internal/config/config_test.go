package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbridge/internal/config"
)

var envKeys = []string{
	"FORMBRIDGE_CONFIG",
	"FORMBRIDGE_ADDR",
	"FORMBRIDGE_BASE_PATH",
	"FORMBRIDGE_SOURCE",
	"FORMBRIDGE_DB",
	"FORMBRIDGE_FORMS_DIR",
	"FORMBRIDGE_REMOTE_URL",
	"FORMBRIDGE_REMOTE_KEY",
	"FORMBRIDGE_REMOTE_SECRET",
	"FORMBRIDGE_TIMEOUT",
	"FORMBRIDGE_SANITIZE",
	"FORMBRIDGE_VISIBLE_ONLY",
	"FORMBRIDGE_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FORMBRIDGE_ADDR", ":9090")
	t.Setenv("FORMBRIDGE_SOURCE", "remote")
	t.Setenv("FORMBRIDGE_REMOTE_URL", "https://example.com")
	t.Setenv("FORMBRIDGE_REMOTE_KEY", "ck")
	t.Setenv("FORMBRIDGE_REMOTE_SECRET", "cs")
	t.Setenv("FORMBRIDGE_TIMEOUT", "3s")
	t.Setenv("FORMBRIDGE_SANITIZE", "true")
	t.Setenv("FORMBRIDGE_VISIBLE_ONLY", "1")
	t.Setenv("FORMBRIDGE_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Source != config.SourceRemote || cfg.RemoteURL != "https://example.com" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.RemoteKey != "ck" || cfg.RemoteSecret != "cs" {
		t.Fatalf("unexpected credentials: %+v", cfg)
	}
	if cfg.Timeout != 3*time.Second || !cfg.Sanitize || !cfg.VisibleOnly || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected tuning: %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "formbridge.yaml")
	data := []byte("addr: \":7070\"\nsource: dir\nformsDir: ./forms\ntimeout: 2s\nsanitize: true\nvisibleOnly: true\nlogLevel: warn\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FORMBRIDGE_CONFIG", path)
	t.Setenv("FORMBRIDGE_ADDR", ":6060")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":6060" {
		t.Errorf("env should win over file, Addr = %q", cfg.Addr)
	}
	if cfg.Source != config.SourceDir || cfg.FormsDir != "./forms" {
		t.Errorf("unexpected source: %+v", cfg)
	}
	if cfg.Timeout != 2*time.Second || !cfg.Sanitize || !cfg.VisibleOnly || cfg.LogLevel != slog.LevelWarn {
		t.Errorf("unexpected tuning: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown source":   {"FORMBRIDGE_SOURCE": "ftp"},
		"remote no url":    {"FORMBRIDGE_SOURCE": "remote"},
		"dir no path":      {"FORMBRIDGE_SOURCE": "dir"},
		"bad timeout":      {"FORMBRIDGE_TIMEOUT": "soon"},
		"bad sanitize":     {"FORMBRIDGE_SANITIZE": "maybe"},
		"bad visible only": {"FORMBRIDGE_VISIBLE_ONLY": "some"},
		"bad level":        {"FORMBRIDGE_LOG_LEVEL": "loud"},
		"missing file":     {"FORMBRIDGE_CONFIG": filepath.Join(os.TempDir(), "does-not-exist-formbridge.yaml")},
		"negative timeout": {"FORMBRIDGE_TIMEOUT": "-1s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range env {
				t.Setenv(key, value)
			}
			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
