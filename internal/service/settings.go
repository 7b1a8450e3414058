package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/domain/settings"
)

// SettingsService persists the application settings document under the
// base data directory. The settings file is shared across identity
// partitions (it is not per-user state).
type SettingsService struct {
	mu   sync.Mutex
	path string
}

// NewSettingsService creates a settings service rooted at baseDir.
func NewSettingsService(baseDir string) *SettingsService {
	return &SettingsService{path: filepath.Join(baseDir, "settings.json")}
}

// Load returns the stored settings, or defaults when the file is missing
// or malformed. Settings corruption must never block launcher startup.
func (s *SettingsService) Load() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings.Defaults()
	}
	cfg := settings.Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return settings.Defaults()
	}
	return cfg
}

// Save persists the settings document.
func (s *SettingsService) Save(cfg settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// StampLastSync records the completion time of an explicit bulk sync.
func (s *SettingsService) StampLastSync() error {
	cfg := s.Load()
	cfg.Sync.LastSync = prompt.Now()
	return s.Save(cfg)
}

// SetSyncEnabled flips the sync-enabled flag in the settings document.
func (s *SettingsService) SetSyncEnabled(enabled bool) error {
	cfg := s.Load()
	cfg.Sync.Enabled = enabled
	return s.Save(cfg)
}
