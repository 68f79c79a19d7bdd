package config

import (
	"github.com/hyperjump/kurabe/internal/models"
	"github.com/hyperjump/kurabe/internal/paginate"
)

// DefaultQuery is the query the one-time bootstrap search runs.
const DefaultQuery = "recuperação de informação"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000"
	}
	if cfg.API.TimeoutMS == 0 {
		cfg.API.TimeoutMS = 30000
	}
	if cfg.Search.DefaultQuery == "" {
		cfg.Search.DefaultQuery = DefaultQuery
	}
	if cfg.Search.PageSize == 0 {
		cfg.Search.PageSize = paginate.DefaultPageSize
	}
	if cfg.Search.K1 == 0 {
		cfg.Search.K1 = models.DefaultK1
	}
	if cfg.Search.B == 0 {
		cfg.Search.B = models.DefaultB
	}
	if cfg.Search.TFIDFWeight == "" {
		cfg.Search.TFIDFWeight = models.WeightLog
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
}

// Default returns a config with every default applied, for running without a
// config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
