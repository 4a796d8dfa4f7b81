package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the hips CLI.
type Config struct {
	// Survey is the remote survey root URL (fetch).
	Survey string `yaml:"survey"`

	// Order is the HiPS order of the tiles to fetch.
	Order int `yaml:"order"`

	// Format is the tile file format: fits, jpg or png.
	Format string `yaml:"format"`

	// Frame is the sky coordinate frame (convert).
	Frame string `yaml:"frame"`

	// TileWidth is the tile width in pixels (convert).
	TileWidth int `yaml:"tile_width"`

	// Out is the output directory or bucket URL.
	Out string `yaml:"out"`

	// Workers is the worker pool size for fetching.
	Workers int `yaml:"workers"`

	// Strategy is the fetch strategy: pool or concurrent.
	Strategy string `yaml:"strategy"`

	// Progress enables the progress display.
	Progress bool `yaml:"progress"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Format:    "fits",
		Frame:     "icrs",
		TileWidth: 512,
		Workers:   10,
		Strategy:  "pool",
		Timeout:   10 * time.Second,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	Survey    string `yaml:"survey"`
	Order     int    `yaml:"order"`
	Format    string `yaml:"format"`
	Frame     string `yaml:"frame"`
	TileWidth int    `yaml:"tile_width"`
	Out       string `yaml:"out"`
	Workers   int    `yaml:"workers"`
	Strategy  string `yaml:"strategy"`
	Progress  bool   `yaml:"progress"`
	Timeout   string `yaml:"timeout"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Survey != "" {
		cfg.Survey = yc.Survey
	}
	if yc.Order != 0 {
		cfg.Order = yc.Order
	}
	if yc.Format != "" {
		cfg.Format = yc.Format
	}
	if yc.Frame != "" {
		cfg.Frame = yc.Frame
	}
	if yc.TileWidth != 0 {
		cfg.TileWidth = yc.TileWidth
	}
	if yc.Out != "" {
		cfg.Out = yc.Out
	}
	if yc.Workers != 0 {
		cfg.Workers = yc.Workers
	}
	if yc.Strategy != "" {
		cfg.Strategy = yc.Strategy
	}
	cfg.Progress = yc.Progress
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the HIPS_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("HIPS_SURVEY"); v != "" {
		c.Survey = v
	}
	if v := os.Getenv("HIPS_ORDER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HIPS_ORDER: %w", err)
		}
		c.Order = n
	}
	if v := os.Getenv("HIPS_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("HIPS_FRAME"); v != "" {
		c.Frame = v
	}
	if v := os.Getenv("HIPS_TILE_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HIPS_TILE_WIDTH: %w", err)
		}
		c.TileWidth = n
	}
	if v := os.Getenv("HIPS_OUT"); v != "" {
		c.Out = v
	}
	if v := os.Getenv("HIPS_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse HIPS_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("HIPS_STRATEGY"); v != "" {
		c.Strategy = v
	}
	if v := os.Getenv("HIPS_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("HIPS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse HIPS_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.TileWidth <= 0 || c.TileWidth&(c.TileWidth-1) != 0 {
		return errors.New("config: tile_width must be a positive power of two")
	}
	if c.Order < 0 {
		return errors.New("config: order must be non-negative")
	}
	if c.Strategy != "pool" && c.Strategy != "concurrent" {
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Survey != "" {
		c.Survey = override.Survey
	}
	if override.Order != 0 {
		c.Order = override.Order
	}
	if override.Format != "" {
		c.Format = override.Format
	}
	if override.Frame != "" {
		c.Frame = override.Frame
	}
	if override.TileWidth != 0 {
		c.TileWidth = override.TileWidth
	}
	if override.Out != "" {
		c.Out = override.Out
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.Strategy != "" {
		c.Strategy = override.Strategy
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	return c
}
