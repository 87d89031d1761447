// Package config provides configuration management for the site compiler.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the commands look for a configuration file when none is given.
const DefaultPath = "configs/site.yaml"

// Configuration validation errors.
var (
	ErrMissingRestaurants   = errors.New("sources.restaurants is required")
	ErrMissingOutputRoot    = errors.New("output.root is required")
	ErrInvalidItemsDir      = errors.New("output.items_dir must be a relative path inside output.root")
	ErrMissingSkeleton      = errors.New("templates.skeleton is required")
	ErrMissingRestaurantTpl = errors.New("templates.restaurant is required")
	ErrWebsiteTemplate      = errors.New("urls.website must contain {slug}")
	ErrOrderingTemplate     = errors.New("urls.ordering must contain {id}")
	ErrInvalidMediaPrefix   = errors.New("validation.media_prefix must end with '/'")
	ErrInvalidDescWidth     = errors.New("index.description_width must be non-negative")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete compiler configuration.
type Config struct {
	Sources    SourcesConfig    `yaml:"sources"`
	Templates  TemplatesConfig  `yaml:"templates"`
	Output     OutputConfig     `yaml:"output"`
	URLs       URLsConfig       `yaml:"urls"`
	Index      IndexConfig      `yaml:"index"`
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Deploy     DeployConfig     `yaml:"deploy"`
}

// SourcesConfig points at the input data files.
type SourcesConfig struct {
	Restaurants string `yaml:"restaurants"`
	Homepage    string `yaml:"homepage"`
	Reviews     string `yaml:"reviews"`
	MediaDir    string `yaml:"media_dir"`
}

// TemplatesConfig names the page templates. An empty Dir selects the embedded set.
type TemplatesConfig struct {
	Dir        string `yaml:"dir"`
	Skeleton   string `yaml:"skeleton"`
	Restaurant string `yaml:"restaurant"`
}

// OutputConfig defines the generated site layout.
type OutputConfig struct {
	Root      string `yaml:"root"`
	ItemsDir  string `yaml:"items_dir"`
	MediaRoot string `yaml:"media_root"`
	CopyMedia *bool  `yaml:"copy_media"`
	SignPages bool   `yaml:"sign_pages"`
}

// URLsConfig holds the external link templates.
type URLsConfig struct {
	Website  string `yaml:"website"`
	Ordering string `yaml:"ordering"`
}

// IndexConfig controls the listing page.
type IndexConfig struct {
	Title            string `yaml:"title"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	DescriptionWidth int    `yaml:"description_width"`
}

// ValidationConfig defines data convention checks.
type ValidationConfig struct {
	MediaPrefix string `yaml:"media_prefix"`
	Strict      bool   `yaml:"strict"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DeployConfig describes the S3-compatible publish target.
type DeployConfig struct {
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	PublicURL string `yaml:"public_url"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()

	return cfg
}

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads path when it is set, falls back to DefaultPath when that
// file exists, and otherwise returns the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return Default(), nil
		}

		path = DefaultPath
	}

	return LoadConfig(path)
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Sources.Restaurants, "data/restaurants.jsonc")
	setDefault(&c.Sources.Homepage, "data/homepage.jsonc")
	setDefault(&c.Sources.Reviews, "data/reviews.jsonc")
	setDefault(&c.Sources.MediaDir, "data/media")

	setDefault(&c.Templates.Skeleton, "skeleton.html")
	setDefault(&c.Templates.Restaurant, "restaurant.html")

	setDefault(&c.Output.Root, "docs")
	setDefault(&c.Output.ItemsDir, "restaurants")
	setDefault(&c.Output.MediaRoot, c.Output.Root)

	if c.Output.CopyMedia == nil {
		copyMedia := true
		c.Output.CopyMedia = &copyMedia
	}

	setDefault(&c.URLs.Website, "https://www.rit.edu/dining/location/{slug}")
	setDefault(&c.URLs.Ordering, "https://ondemand.rit.edu/menu/{id}")

	setDefault(&c.Index.Title, "Restaurants")
	setDefault(&c.Index.Name, "Restaurants Index")
	setDefault(&c.Index.Description, "All restaurants")

	setDefault(&c.Validation.MediaPrefix, "media/")
	setDefault(&c.Logging.Level, "info")
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Sources.Restaurants == "" {
		return ErrMissingRestaurants
	}

	if c.Output.Root == "" {
		return ErrMissingOutputRoot
	}

	items := filepath.Clean(c.Output.ItemsDir)
	if c.Output.ItemsDir == "" || filepath.IsAbs(items) || items == "." || strings.HasPrefix(items, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidItemsDir, c.Output.ItemsDir)
	}

	if c.Templates.Skeleton == "" {
		return ErrMissingSkeleton
	}

	if c.Templates.Restaurant == "" {
		return ErrMissingRestaurantTpl
	}

	if !strings.Contains(c.URLs.Website, "{slug}") {
		return ErrWebsiteTemplate
	}

	if !strings.Contains(c.URLs.Ordering, "{id}") {
		return ErrOrderingTemplate
	}

	if !strings.HasSuffix(c.Validation.MediaPrefix, "/") {
		return ErrInvalidMediaPrefix
	}

	if c.Index.DescriptionWidth < 0 {
		return ErrInvalidDescWidth
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// ShouldCopyMedia reports whether the media directory is mirrored into the output root.
func (c *Config) ShouldCopyMedia() bool {
	return c.Output.CopyMedia == nil || *c.Output.CopyMedia
}

// ItemsPath returns the directory that holds the per-restaurant pages.
func (c *Config) ItemsPath() string {
	return filepath.Join(c.Output.Root, c.Output.ItemsDir)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Restaurants: %s, Output: %s, Items: %s}",
		c.Sources.Restaurants,
		c.Output.Root,
		c.Output.ItemsDir,
	)
}
