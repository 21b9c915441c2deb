// Package config provides configuration loading and management for patternbook.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/patternbook/loader"
	"github.com/c360studio/patternbook/render"
)

// Config represents the complete patternbook configuration
type Config struct {
	Catalog CatalogConfig      `yaml:"catalog"`
	Watch   loader.WatchConfig `yaml:"watch"`
	Render  RenderConfig       `yaml:"render"`
	Log     LogConfig          `yaml:"log"`
}

// CatalogConfig configures catalog document loading
type CatalogConfig struct {
	// Paths are extra document locations: files, directories, or glob
	// patterns (** supported). The embedded documents are always loaded.
	Paths []string `yaml:"paths"`

	// Strict fails the load on malformed extra documents instead of
	// skipping them with a warning.
	Strict bool `yaml:"strict"`

	// Title is the document title used when rendering the catalog.
	Title string `yaml:"title"`
}

// RenderConfig configures catalog rendering
type RenderConfig struct {
	// Format is the default output format (markdown, json).
	Format string `yaml:"format"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Paths:  nil, // Embedded documents only
			Strict: false,
			Title:  render.DefaultTitle,
		},
		Watch: loader.DefaultWatchConfig(),
		Render: RenderConfig{
			Format: string(render.FormatMarkdown),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Catalog.Title == "" {
		return fmt.Errorf("catalog.title is required")
	}
	if _, err := render.ParseFormat(c.Render.Format); err != nil {
		return fmt.Errorf("render.format: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Catalog
	if len(other.Catalog.Paths) > 0 {
		c.Catalog.Paths = other.Catalog.Paths
	}
	if other.Catalog.Strict {
		c.Catalog.Strict = true
	}
	if other.Catalog.Title != "" {
		c.Catalog.Title = other.Catalog.Title
	}

	// Watch
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.FileExtensions) > 0 {
		c.Watch.FileExtensions = other.Watch.FileExtensions
	}
	if len(other.Watch.ExcludeDirs) > 0 {
		c.Watch.ExcludeDirs = other.Watch.ExcludeDirs
	}

	// Render
	if other.Render.Format != "" {
		c.Render.Format = other.Render.Format
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// LoaderOptions converts the catalog section to loader options.
func (c *Config) LoaderOptions() loader.Options {
	return loader.Options{
		Paths:  c.Catalog.Paths,
		Strict: c.Catalog.Strict,
	}
}
