package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Server.Port != "7377" {
		t.Errorf("port = %q, want 7377", cfg.Server.Port)
	}
	if cfg.Firestore.BaseURL != "https://firestore.googleapis.com/v1" {
		t.Errorf("firestore base url = %q", cfg.Firestore.BaseURL)
	}
	if cfg.Cache.MaxBytes != 8<<20 {
		t.Errorf("cache max bytes = %d, want %d", cfg.Cache.MaxBytes, 8<<20)
	}
	if cfg.Logging.Service != "promptdeck" {
		t.Errorf("logging service = %q", cfg.Logging.Service)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptdeck.yaml")
	body := `
server:
  port: "9000"
data:
  dir: /tmp/pd
firestore:
  project_id: my-project
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Data.Dir != "/tmp/pd" {
		t.Errorf("data dir = %q", cfg.Data.Dir)
	}
	if cfg.Firestore.ProjectID != "my-project" {
		t.Errorf("project id = %q", cfg.Firestore.ProjectID)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	// Untouched keys keep defaults.
	if cfg.Server.CORSOrigin != "*" {
		t.Errorf("cors origin = %q, want *", cfg.Server.CORSOrigin)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptdeck.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROMPTDECK_PORT", "9100")
	t.Setenv("PROMPTDECK_DATA_DIR", "/tmp/env-dir")
	t.Setenv("PROMPTDECK_CACHE_MAX_BYTES", "1024")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port = %q, want env override 9100", cfg.Server.Port)
	}
	if cfg.Data.Dir != "/tmp/env-dir" {
		t.Errorf("data dir = %q", cfg.Data.Dir)
	}
	if cfg.Cache.MaxBytes != 1024 {
		t.Errorf("cache max bytes = %d, want 1024", cfg.Cache.MaxBytes)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	t.Setenv("PROMPTDECK_PORT", "not-a-port")
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestValidateRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptdeck.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
