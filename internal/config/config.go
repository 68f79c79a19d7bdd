// Package config provides configuration loading and structs for Kurabe.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	API    APIConfig    `yaml:"api"`
	Search SearchConfig `yaml:"search"`
	Server ServerConfig `yaml:"server"`
}

// APIConfig holds the ranking API endpoint settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// Timeout returns the configured request timeout as a duration.
func (a *APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// SearchConfig holds the comparison defaults: the bootstrap query, the
// column page size, and the BM25/TF-IDF parameters.
type SearchConfig struct {
	DefaultQuery string  `yaml:"default_query"`
	PageSize     int     `yaml:"page_size"`
	K1           float64 `yaml:"k1"`
	B            float64 `yaml:"b"`
	TFIDFWeight  string  `yaml:"tf_idf_weight"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}
