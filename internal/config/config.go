package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"fixtrace/internal/errors"
)

// Config represents the complete fixtrace configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Search  SearchConfig  `json:"search" mapstructure:"search"`
	Hunt    HuntConfig    `json:"hunt" mapstructure:"hunt"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// SearchConfig controls how git history is queried
type SearchConfig struct {
	// Branches restricts the scan to specific refs; empty means all refs
	Branches []string `json:"branches" mapstructure:"branches"`
	// Since is a git-style time window expression, e.g. "10 years ago"
	Since string `json:"since" mapstructure:"since"`
	// IgnoreCase makes subject matching case-insensitive
	IgnoreCase bool `json:"ignoreCase" mapstructure:"ignoreCase"`
	// QueryTimeoutMs bounds a single git invocation; 0 disables the timeout
	QueryTimeoutMs int `json:"queryTimeoutMs" mapstructure:"queryTimeoutMs"`
}

// HuntConfig controls traversal scheduling
type HuntConfig struct {
	// Workers is the number of concurrent top-level traversals
	Workers int `json:"workers" mapstructure:"workers"`
	// Recursive enables following secondary fix chains
	Recursive bool `json:"recursive" mapstructure:"recursive"`
	// Strict turns per-subject traversal failures into a non-zero exit
	Strict bool `json:"strict" mapstructure:"strict"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Search: SearchConfig{
			Branches:       []string{},
			Since:          "10 years ago",
			IgnoreCase:     false,
			QueryTimeoutMs: 0,
		},
		Hunt: HuntConfig{
			Workers:   runtime.NumCPU(),
			Recursive: true,
			Strict:    false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <repoRoot>/.fixtrace/config.json.
// A missing config file is not an error; defaults are returned.
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults so a partial config file still yields a complete struct
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("repoRoot", repoRoot)
	v.SetDefault("search.branches", def.Search.Branches)
	v.SetDefault("search.since", def.Search.Since)
	v.SetDefault("search.ignoreCase", def.Search.IgnoreCase)
	v.SetDefault("search.queryTimeoutMs", def.Search.QueryTimeoutMs)
	v.SetDefault("hunt.workers", def.Hunt.Workers)
	v.SetDefault("hunt.recursive", def.Hunt.Recursive)
	v.SetDefault("hunt.strict", def.Hunt.Strict)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".fixtrace"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			cfg.RepoRoot = repoRoot
			return cfg, nil
		}
		return nil, errors.New(
			errors.ConfigInvalid,
			"Failed to read config file",
			err,
			nil,
		)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New(
			errors.ConfigInvalid,
			"Failed to parse config file",
			err,
			nil,
		)
	}

	return &cfg, nil
}

// Save writes the configuration to <repoRoot>/.fixtrace/config.json
func (c *Config) Save(repoRoot string) error {
	configDir := filepath.Join(repoRoot, ".fixtrace")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid.
// Invalid configuration is fatal before any queries run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Search.Since) == "" {
		return errors.New(
			errors.ConfigInvalid,
			"search.since must be a non-empty git time expression",
			nil,
			nil,
		)
	}
	if c.Search.QueryTimeoutMs < 0 {
		return errors.New(
			errors.ConfigInvalid,
			"search.queryTimeoutMs must not be negative",
			nil,
			nil,
		)
	}
	if c.Hunt.Workers < 1 {
		return errors.New(
			errors.ConfigInvalid,
			"hunt.workers must be at least 1",
			nil,
			nil,
		).WithDetails(map[string]interface{}{
			"workers": c.Hunt.Workers,
		})
	}
	switch c.Logging.Format {
	case "json", "human":
	default:
		return errors.New(
			errors.ConfigInvalid,
			"logging.format must be json or human",
			nil,
			nil,
		).WithDetails(map[string]interface{}{
			"format": c.Logging.Format,
		})
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(
			errors.ConfigInvalid,
			"logging.level must be one of debug, info, warn, error",
			nil,
			nil,
		).WithDetails(map[string]interface{}{
			"level": c.Logging.Level,
		})
	}
	return nil
}
