package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration, read from environment variables.
type Config struct {
	Port      string `envconfig:"PORT" default:"4000"`
	DBPath    string `envconfig:"DB_PATH" default:"db.json"`
	JWTSecret string `envconfig:"JWT_SECRET" default:""`

	// Bootstrap admin credentials. The admin account is created at startup
	// when both are set and the username is not yet registered.
	AdminUser string `envconfig:"ADMIN_USER" default:""`
	AdminPass string `envconfig:"ADMIN_PASS" default:""`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}
