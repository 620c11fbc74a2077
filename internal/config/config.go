// Package config provides configuration types and defaults for docket.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/docket/internal/log"
	"github.com/zjrosen/docket/internal/tracing"
)

// Config holds all configuration options for docket.
type Config struct {
	LogPath string         `mapstructure:"log_path"`
	Debug   bool           `mapstructure:"debug"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Tracing tracing.Config `mapstructure:"tracing"`
	Seed    SeedConfig     `mapstructure:"seed"`
}

// CacheConfig holds report cache tuning options.
type CacheConfig struct {
	// Enabled controls whether dashboard summaries are cached.
	// Default: true
	Enabled bool `mapstructure:"enabled"`

	// TTL is how long a cached summary stays live.
	// Default: 30s
	TTL time.Duration `mapstructure:"ttl"`
}

// SeedConfig holds scenario seeding options.
type SeedConfig struct {
	// ScenarioPath points at a YAML scenario applied by `docket seed`
	// when no --file flag is given. Empty uses the built-in demo scenario.
	ScenarioPath string `mapstructure:"scenario_path"`
}

// DefaultLogPath returns the default path for the debug log.
// Returns ~/.config/docket/docket.log or empty string if home dir unavailable.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "docket", "docket.log")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/docket/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "docket", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		LogPath: "", // Derived from config dir at runtime
		Debug:   false,
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Second,
		},
		Tracing: tracing.DefaultConfig(),
		Seed: SeedConfig{
			ScenarioPath: "", // Built-in demo scenario
		},
	}
}

// Validate checks the full configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func Validate(cfg Config) error {
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(cache CacheConfig) error {
	if cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cache.TTL)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(cfg tracing.Config) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if cfg.SampleRate < 0.0 || cfg.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", cfg.SampleRate)
	}

	// Validate Exporter is a valid option
	if cfg.Exporter != "" {
		switch cfg.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", cfg.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if cfg.Enabled {
		if cfg.Exporter == "file" && cfg.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if cfg.Exporter == "otlp" && cfg.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Docket Configuration

# Path to the debug log file (default: ~/.config/docket/docket.log)
# log_path: /tmp/docket.log

# Enable debug logging (same as --debug)
debug: false

# Report cache settings
cache:
  enabled: true   # Cache dashboard summaries between reads
  ttl: 30s        # How long a cached summary stays live

# Scenario seeding
# seed:
#   # YAML scenario applied by 'docket seed' when no --file flag is given.
#   # Empty uses the built-in demo scenario.
#   scenario_path: ./scenario.yaml

# Tracing configuration
# Emits spans for CLI commands and report queries
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/docket/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#   service_name: docket           # Service name attached to exported spans
#
# Example: Enable tracing with file export
# tracing:
#   enabled: true
#   exporter: file
#   file_path: ~/.config/docket/traces/traces.jsonl
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
