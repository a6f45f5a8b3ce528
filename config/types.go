package config

import (
	"strings"
	"time"
)

// PermissionInternet is the capability required for outbound network access
const PermissionInternet = "internet"

// Config represents the complete configuration structure
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Flickr  FlickrConfig  `mapstructure:"flickr"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AppConfig holds the capabilities the application declares
type AppConfig struct {
	Permissions []string `mapstructure:"permissions"`
}

// HasPermission checks whether the named capability is declared
func (a AppConfig) HasPermission(name string) bool {
	for _, p := range a.Permissions {
		if strings.EqualFold(strings.TrimSpace(p), name) {
			return true
		}
	}
	return false
}

// FlickrConfig holds Flickr API connection details
type FlickrConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	PerPage  int           `mapstructure:"per_page"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Breaker  BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig controls the circuit breaker in front of the API
type BreakerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Failures uint32        `mapstructure:"failures"`
	CoolDown time.Duration `mapstructure:"cool_down"`
}

// NotifyConfig contains notification settings
type NotifyConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
