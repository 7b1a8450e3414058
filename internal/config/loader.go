package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "promptdeck.yaml"

// Defaults returns the built-in configuration.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Server: Server{
			Port:       "7377",
			CORSOrigin: "*",
		},
		Data: Data{
			Dir: filepath.Join(home, ".promptdeck"),
		},
		Firestore: Firestore{
			BaseURL: "https://firestore.googleapis.com/v1",
		},
		Cache: Cache{
			MaxBytes: 8 << 20, // 8 MiB of prompt content
		},
		Logging: Logging{
			Level:   "info",
			Service: "promptdeck",
		},
	}
}

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PROMPTDECK_PORT")
	setString(&cfg.Server.CORSOrigin, "PROMPTDECK_CORS_ORIGIN")
	setString(&cfg.Data.Dir, "PROMPTDECK_DATA_DIR")
	setString(&cfg.Firestore.ProjectID, "PROMPTDECK_FIRESTORE_PROJECT")
	setString(&cfg.Firestore.BaseURL, "PROMPTDECK_FIRESTORE_URL")
	setInt64(&cfg.Cache.MaxBytes, "PROMPTDECK_CACHE_MAX_BYTES")
	setString(&cfg.Logging.Level, "PROMPTDECK_LOG_LEVEL")
	setString(&cfg.Logging.Service, "PROMPTDECK_LOG_SERVICE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required")
	}
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %q", cfg.Server.Port)
	}
	if cfg.Data.Dir == "" {
		return errors.New("data dir is required")
	}
	if cfg.Cache.MaxBytes <= 0 {
		return fmt.Errorf("cache max_bytes must be positive: %d", cfg.Cache.MaxBytes)
	}
	return nil
}
