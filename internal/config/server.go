package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds HTTP server settings read from the environment.
type ServerConfig struct {
	Port                string `env:"PORT" envDefault:"8000"`
	CORSAllowedOrigin   string `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	ImportanceModelPath string `env:"IMPORTANCE_MODEL_PATH" envDefault:"importance_model.yaml"`
	VoterDataDir        string `env:"VOTER_DATA_DIR" envDefault:"data"`
	Debug               bool   `env:"DEBUG" envDefault:"false"`

	// VoterReloadCron reloads the voter data directory on a six-field cron
	// schedule (with seconds). Empty disables reloading.
	VoterReloadCron string `env:"VOTER_RELOAD_CRON"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// LoadServerConfig loads server settings from environment variables.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
