// Package config loads server configuration from an optional TOML file,
// overlaid by TASKDECK_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Defaults.
const (
	DefaultAddr   = "localhost:8080"
	DefaultDBPath = "taskdeck.db"
)

// Config holds the server configuration.
type Config struct {
	Addr           string   `toml:"addr" envconfig:"ADDR"`
	DBPath         string   `toml:"db_path" envconfig:"DB_PATH"`
	Debug          bool     `toml:"debug" envconfig:"DEBUG"`
	LogJSON        bool     `toml:"log_json" envconfig:"LOG_JSON"`
	AllowedOrigins []string `toml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`

	// Bootstrap seeds the initial manager account at startup when set.
	// Role assignment has no API surface, so the first manager has to come
	// from configuration.
	Bootstrap BootstrapConfig `toml:"bootstrap"`
}

// BootstrapConfig describes the initial manager account.
type BootstrapConfig struct {
	ManagerName     string `toml:"manager_name" envconfig:"MANAGER_NAME"`
	ManagerEmail    string `toml:"manager_email" envconfig:"MANAGER_EMAIL"`
	ManagerPassword string `toml:"manager_password" envconfig:"MANAGER_PASSWORD"`
}

// Load reads configuration: defaults, then the TOML file at path (skipped
// when path is empty or missing), then TASKDECK_* environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:   DefaultAddr,
		DBPath: DefaultDBPath,
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("TASKDECK", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, nil
}
