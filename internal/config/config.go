// Package config provides hierarchical configuration loading for
// promptdeck. Precedence: defaults < YAML file < environment variables.
package config

// Config holds all runtime configuration for the promptdeck core service.
type Config struct {
	Server    Server    `yaml:"server"`
	Data      Data      `yaml:"data"`
	Firestore Firestore `yaml:"firestore"`
	Cache     Cache     `yaml:"cache"`
	Logging   Logging   `yaml:"logging"`
}

// Server holds the local command-surface HTTP configuration. The server
// binds to loopback; it exists for the launcher UI, not the network.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Data holds local storage configuration.
type Data struct {
	// Dir is the base data directory. Defaults to ~/.promptdeck.
	Dir string `yaml:"dir"`
}

// Firestore holds remote mirror configuration.
type Firestore struct {
	ProjectID string `yaml:"project_id"`
	BaseURL   string `yaml:"base_url"`
}

// Cache holds the in-process content cache configuration.
type Cache struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}
