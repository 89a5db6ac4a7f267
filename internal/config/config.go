// Package config provides configuration management for the odds tracker.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Report   ReportConfig   `mapstructure:"report" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DataConfig represents where the settled-games table comes from
type DataConfig struct {
	Source          string  `mapstructure:"source" validate:"required,oneof=file http"`
	Path            string  `mapstructure:"path"`
	URL             string  `mapstructure:"url" validate:"omitempty,url"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries      int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// ReportConfig represents report output configuration
type ReportConfig struct {
	OutputPath string   `mapstructure:"output_path" validate:"required"`
	Formats    []string `mapstructure:"formats" validate:"required,min=1,formats"`
	Grouping   string   `mapstructure:"grouping" validate:"required,oneof=week date"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// ScheduleConfig represents the tracker's periodic refresh schedule
type ScheduleConfig struct {
	RefreshEnabled bool   `mapstructure:"refresh_enabled"`
	RefreshCron    string `mapstructure:"refresh_cron"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheTTL returns the loaded-table cache TTL as a duration
func (c *DataConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Timeout returns the HTTP fetch timeout as a duration
func (c *DataConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
