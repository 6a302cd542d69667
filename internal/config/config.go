// Package config loads the serve command's runtime configuration from
// an optional YAML file with .env/environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the souk daemon.
type Config struct {
	// Database is the path to the SQLite registry file.
	Database string `yaml:"database"`

	// Listen is the HTTP listen address for the serve command.
	Listen string `yaml:"listen"`

	// Custody names the account journaled as payer of outbound
	// transfers.
	Custody string `yaml:"custody"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the zero-config settings.
func Default() Config {
	return Config{
		Database: "souk.db",
		Listen:   "127.0.0.1:8080",
		Custody:  "souk.custody",
	}
}

// Load builds the configuration in three layers: defaults, then an
// optional YAML file, then environment variables (a .env file in the
// working directory is folded into the environment first).
//
// Environment overrides: SOUK_DB, SOUK_LISTEN, SOUK_CUSTODY.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Missing .env is fine; it is purely optional.
	_ = godotenv.Load()

	if v := os.Getenv("SOUK_DB"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("SOUK_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("SOUK_CUSTODY"); v != "" {
		cfg.Custody = v
	}

	return cfg, nil
}
