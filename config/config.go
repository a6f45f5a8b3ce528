package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const placeholderAPIKey = "your-api-key-here"

// Load loads the configuration from file and environment.
// FLICKR_API_KEY, read from the process environment or a .env file in the
// working directory, overrides flickr.api_key.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	if err := v.BindEnv("flickr.api_key", "FLICKR_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".interesting"))
		}

		v.AddConfigPath("/etc/interesting/")
	}

	// A missing default config file is fine when the key comes from the environment
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.permissions", []string{PermissionInternet})

	v.SetDefault("flickr.endpoint", "https://api.flickr.com/services/rest/")
	v.SetDefault("flickr.per_page", 25)
	v.SetDefault("flickr.timeout", "30s")
	v.SetDefault("flickr.breaker.enabled", false)
	v.SetDefault("flickr.breaker.failures", 3)
	v.SetDefault("flickr.breaker.cool_down", "30s")

	v.SetDefault("notify.duration", "3500ms")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if !cfg.App.HasPermission(PermissionInternet) {
		return fmt.Errorf("app.permissions must declare %q", PermissionInternet)
	}

	if cfg.Flickr.APIKey == "" || cfg.Flickr.APIKey == placeholderAPIKey {
		return fmt.Errorf("flickr.api_key must be set to a valid API key")
	}

	if cfg.Flickr.Endpoint == "" {
		return fmt.Errorf("flickr.endpoint is required")
	}

	if cfg.Flickr.PerPage <= 0 || cfg.Flickr.PerPage > 500 {
		return fmt.Errorf("invalid flickr.per_page: %d (must be 1-500)", cfg.Flickr.PerPage)
	}

	if cfg.Flickr.Timeout < 0 {
		return fmt.Errorf("invalid flickr.timeout: %s", cfg.Flickr.Timeout)
	}

	if cfg.Flickr.Breaker.Enabled && cfg.Flickr.Breaker.Failures == 0 {
		return fmt.Errorf("flickr.breaker.failures must be > 0 when the breaker is enabled")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
