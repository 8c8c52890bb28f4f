// Package config loads application configuration from the environment.
// File: config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Site API (system of record for every resource)
	SiteAPIURL string `mapstructure:"SITE_API_URL"`

	// Public site, used for the shareable schedule QR code
	PublicSiteURL string `mapstructure:"PUBLIC_SITE_URL"`

	// Cookie session configuration
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// How many wrong admin passwords before the session is terminated
	MaxPasswordAttempts int `mapstructure:"ADMIN_MAX_PASSWORD_ATTEMPTS"`
}

// Load reads configuration from environment variables and an optional
// config file, applying defaults for anything unset.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SITE_API_URL", "http://localhost:3000")
	viper.SetDefault("PUBLIC_SITE_URL", "http://localhost:3000")
	viper.SetDefault("SESSION_SECRET", "dev-session-secret")
	viper.SetDefault("ADMIN_MAX_PASSWORD_ATTEMPTS", 3)
}

func validate(c *Config) error {
	if c.SiteAPIURL == "" {
		return fmt.Errorf("SITE_API_URL is required")
	}
	if c.MaxPasswordAttempts < 1 {
		return fmt.Errorf("ADMIN_MAX_PASSWORD_ATTEMPTS must be at least 1, got %d", c.MaxPasswordAttempts)
	}
	if c.Environment == "production" && c.SessionSecret == "dev-session-secret" {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return nil
}
