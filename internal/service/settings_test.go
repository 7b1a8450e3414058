package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptdeck/promptdeck/internal/domain/settings"
)

func TestSettingsLoadDefaultsWhenMissing(t *testing.T) {
	svc := NewSettingsService(t.TempDir())

	got := svc.Load()
	want := settings.Defaults()
	if got != want {
		t.Fatalf("got %+v, want defaults %+v", got, want)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := NewSettingsService(t.TempDir())

	cfg := settings.Defaults()
	cfg.General.Hotkey = "CommandOrControl+P"
	cfg.Appearance.Theme = "light"
	cfg.Sync.Enabled = true

	if err := svc.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := svc.Load(); got != cfg {
		t.Fatalf("got %+v, want %+v", svc.Load(), cfg)
	}
}

func TestSettingsLoadToleratesCorruption(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewSettingsService(dir)
	if got := svc.Load(); got != settings.Defaults() {
		t.Fatalf("corrupt settings must fall back to defaults, got %+v", got)
	}
}

func TestStampLastSync(t *testing.T) {
	svc := NewSettingsService(t.TempDir())

	if err := svc.StampLastSync(); err != nil {
		t.Fatalf("stamp: %v", err)
	}
	if svc.Load().Sync.LastSync == "" {
		t.Fatal("lastSync not stamped")
	}
}

func TestSetSyncEnabled(t *testing.T) {
	svc := NewSettingsService(t.TempDir())

	if err := svc.SetSyncEnabled(true); err != nil {
		t.Fatal(err)
	}
	if !svc.Load().Sync.Enabled {
		t.Fatal("sync flag not persisted")
	}
	if err := svc.SetSyncEnabled(false); err != nil {
		t.Fatal(err)
	}
	if svc.Load().Sync.Enabled {
		t.Fatal("sync flag not cleared")
	}
}
