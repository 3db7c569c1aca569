// Package config loads plotweave.toml project configuration.
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/plotweave/plotweave/pkg/cache"
	"github.com/plotweave/plotweave/pkg/errors"
	"github.com/plotweave/plotweave/pkg/layout"
	"github.com/plotweave/plotweave/pkg/story"
)

// DefaultFileName is the configuration file looked up in a project root.
const DefaultFileName = "plotweave.toml"

// Config is the full project configuration. Every section is optional;
// omitted values fall back to engine defaults.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Layout   LayoutConfig   `toml:"layout"`
	Cache    CacheConfig    `toml:"cache"`
	Palette  PaletteConfig  `toml:"palette"`
}

// AnalysisConfig controls the analysis pass.
type AnalysisConfig struct {
	// DebugPath is the scratch file path excluded from analysis.
	DebugPath string `toml:"debug_path"`

	// StoryPaths are file paths always classified as story even without
	// labels.
	StoryPaths []string `toml:"story_paths"`
}

// LayoutConfig controls diagram spacing.
type LayoutConfig struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	HPadding   float64 `toml:"h_padding"`
	VPadding   float64 `toml:"v_padding"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo", "none".
	// Empty means "file".
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty uses the XDG cache dir.
	Dir string `toml:"dir"`

	// RedisURL configures the redis backend.
	RedisURL string `toml:"redis_url"`

	// Mongo settings for the mongo backend.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// PaletteConfig overrides the built-in route/character palette.
type PaletteConfig struct {
	Colors []string `toml:"colors"`
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadProject looks for plotweave.toml in dir and loads it. A missing file
// is not an error: the zero configuration is returned.
func LoadProject(dir string) (Config, error) {
	path := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}
	return Load(path)
}

// Validate checks fields that cannot be checked during decoding.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", "file", "redis", "mongo", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %s", c.Cache.Backend)
	}
	return nil
}

// AnalysisOptions converts the config into engine options.
func (c Config) AnalysisOptions() story.Options {
	return story.Options{
		DebugPath:  c.Analysis.DebugPath,
		StoryPaths: c.Analysis.StoryPaths,
		Palette:    c.Palette.Colors,
	}
}

// LayoutOptions converts the config into layout options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		NodeWidth:  c.Layout.NodeWidth,
		NodeHeight: c.Layout.NodeHeight,
		HPadding:   c.Layout.HPadding,
		VPadding:   c.Layout.VPadding,
	}
}

// OpenCache constructs the configured cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", "file":
		dir := c.Cache.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(base, "plotweave")
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, c.Cache.RedisURL)
	case "mongo":
		db := c.Cache.MongoDatabase
		if db == "" {
			db = "plotweave"
		}
		coll := c.Cache.MongoCollection
		if coll == "" {
			coll = "cache"
		}
		return cache.NewMongoCache(ctx, c.Cache.MongoURI, db, coll)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %s", c.Cache.Backend)
	}
}
