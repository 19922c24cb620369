// Package config loads and validates cardindex configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete cardindex configuration.
type Config struct {
	Version     int               `yaml:"version" json:"version"`
	Catalog     CatalogConfig     `yaml:"catalog" json:"catalog"`
	Index       IndexConfig       `yaml:"index" json:"index"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	Performance PerformanceConfig `yaml:"performance" json:"performance"`
	Watch       WatchConfig       `yaml:"watch" json:"watch"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
}

// CatalogConfig locates the raw catalog inputs.
type CatalogConfig struct {
	// SetsFile is the path to the set catalog (JSON array of sets).
	SetsFile string `yaml:"sets_file" json:"sets_file"`
	// CardsDir is the directory containing one <set-id>.json card file per set.
	CardsDir string `yaml:"cards_dir" json:"cards_dir"`
}

// IndexConfig tunes index construction.
type IndexConfig struct {
	// PrefixCap bounds ids accumulated per partial-prefix bucket in the
	// name index. Full names and full words are never capped. The cap keeps
	// very common short prefixes from inflating artifact size.
	PrefixCap int `yaml:"prefix_cap" json:"prefix_cap"`
	// MinWordLength is the shortest word (and prefix) registered in the
	// name index.
	MinWordLength int `yaml:"min_word_length" json:"min_word_length"`
}

// OutputConfig locates the artifact output.
type OutputConfig struct {
	// Dir is the directory the artifact set is published to.
	Dir string `yaml:"dir" json:"dir"`
}

// PerformanceConfig configures performance tuning options.
type PerformanceConfig struct {
	// LoadWorkers bounds the number of per-set card files read concurrently.
	LoadWorkers int `yaml:"load_workers" json:"load_workers"`
	// CacheSize is the number of parsed per-set card files kept in the
	// loader's LRU cache (used across rebuilds in watch mode).
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce is how long to coalesce catalog file events before rebuilding.
	Debounce string `yaml:"debounce" json:"debounce"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Catalog: CatalogConfig{
			SetsFile: filepath.Join("data", "sets.json"),
			CardsDir: filepath.Join("data", "cards"),
		},
		Index: IndexConfig{
			PrefixCap:     100,
			MinWordLength: 2,
		},
		Output: OutputConfig{
			Dir: filepath.Join("data", "index"),
		},
		Performance: PerformanceConfig{
			LoadWorkers: runtime.NumCPU(),
			CacheSize:   500,
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the specified directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. Project config (.cardindex.yaml in dir)
//  3. Environment variables (CARDINDEX_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromFile attempts to load configuration from .cardindex.yaml or .cardindex.yml.
func (c *Config) loadFromFile(dir string) error {
	// .yaml takes precedence over .yml
	for _, name := range []string{".cardindex.yaml", ".cardindex.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return c.loadYAML(path)
		}
	}

	// No config file is fine - use defaults
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.Catalog.SetsFile != "" {
		c.Catalog.SetsFile = other.Catalog.SetsFile
	}
	if other.Catalog.CardsDir != "" {
		c.Catalog.CardsDir = other.Catalog.CardsDir
	}
	if other.Index.PrefixCap != 0 {
		c.Index.PrefixCap = other.Index.PrefixCap
	}
	if other.Index.MinWordLength != 0 {
		c.Index.MinWordLength = other.Index.MinWordLength
	}
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Performance.LoadWorkers != 0 {
		c.Performance.LoadWorkers = other.Performance.LoadWorkers
	}
	if other.Performance.CacheSize != 0 {
		c.Performance.CacheSize = other.Performance.CacheSize
	}
	if other.Watch.Debounce != "" {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
}

// applyEnvOverrides applies CARDINDEX_* environment variables.
// Env vars take the highest precedence.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CARDINDEX_SETS_FILE"); v != "" {
		c.Catalog.SetsFile = v
	}
	if v := os.Getenv("CARDINDEX_CARDS_DIR"); v != "" {
		c.Catalog.CardsDir = v
	}
	if v := os.Getenv("CARDINDEX_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("CARDINDEX_PREFIX_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Index.PrefixCap = n
		}
	}
	if v := os.Getenv("CARDINDEX_LOAD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Performance.LoadWorkers = n
		}
	}
	if v := os.Getenv("CARDINDEX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Catalog.SetsFile == "" {
		return fmt.Errorf("catalog.sets_file must not be empty")
	}
	if c.Catalog.CardsDir == "" {
		return fmt.Errorf("catalog.cards_dir must not be empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Index.PrefixCap < 1 {
		return fmt.Errorf("index.prefix_cap must be at least 1, got %d", c.Index.PrefixCap)
	}
	if c.Index.MinWordLength < 1 {
		return fmt.Errorf("index.min_word_length must be at least 1, got %d", c.Index.MinWordLength)
	}
	if c.Performance.LoadWorkers < 1 {
		return fmt.Errorf("performance.load_workers must be at least 1, got %d", c.Performance.LoadWorkers)
	}
	if c.Performance.CacheSize < 1 {
		return fmt.Errorf("performance.cache_size must be at least 1, got %d", c.Performance.CacheSize)
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce is not a valid duration: %q", c.Watch.Debounce)
	}
	return nil
}

// WatchDebounce returns the parsed watch debounce duration.
// Validate guarantees the value parses; a zero Config falls back to 500ms.
func (c *Config) WatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}
