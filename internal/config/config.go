package config

import (
	"fmt"
	"os"
	"time"

	"zhuangtai/internal/services"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. Every field has a working default;
// a missing config file is not an error.
type Config struct {
	Bind              string                `yaml:"bind"`
	Port              int                   `yaml:"port"`
	Token             string                `yaml:"token"` // JWT secret; empty = generate and persist
	TokenExpiryDays   int                   `yaml:"token_expiry_days"`
	CacheDir          string                `yaml:"cache_dir"`
	BroadcastInterval int                   `yaml:"broadcast_interval_seconds"`
	FontSize          float64               `yaml:"font_size"`
	FontPath          string                `yaml:"font_path"`
	Filter            services.FilterConfig `yaml:"filter"`
}

func defaultConfig() *Config {
	return &Config{
		Bind:              "localhost",
		Port:              8080,
		TokenExpiryDays:   90,
		BroadcastInterval: 10,
		FontSize:          14,
		Filter:            services.DefaultFilterConfig(),
	}
}

// Load reads the YAML config at path, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.BroadcastInterval == 0 {
		cfg.BroadcastInterval = 10
	}
	if cfg.FontSize == 0 {
		cfg.FontSize = 14
	}
	if cfg.Filter.MinTotalBytes == 0 {
		cfg.Filter.MinTotalBytes = services.DefaultFilterConfig().MinTotalBytes
	}

	return cfg, nil
}

// Addr returns the bind address in host:port form
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// TokenExpiry returns the configured token lifetime
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.TokenExpiryDays) * 24 * time.Hour
}

// RenderConfig builds the renderer settings from the config file values
func (c *Config) RenderConfig() services.RenderConfig {
	rc := services.DefaultRenderConfig()
	rc.FontSize = c.FontSize
	rc.FontPath = c.FontPath
	rc.CacheDir = c.CacheDir
	return rc
}
