package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/docket/internal/config"
	"github.com/zjrosen/docket/internal/log"
	"github.com/zjrosen/docket/internal/report"
	"github.com/zjrosen/docket/internal/seed"
	"github.com/zjrosen/docket/internal/tracing"
	"github.com/zjrosen/docket/internal/tracker"
)

const tracerName = "docket/cli"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	tracingProvider *tracing.Provider
	logCleanup      func()
)

var rootCmd = &cobra.Command{
	Use:   "docket",
	Short: "An in-memory issue tracker with severity reporting",
	Long: `Docket keeps users, projects and issues in an in-memory registry,
derives severity dashboards and reports from live state, and seeds the
registry from YAML scenario files.`,
	Version:           version,
	PersistentPreRunE: initRuntime,
	PersistentPostRun: shutdownRuntime,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/docket/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .docket/config.yaml (current directory)
		// 2. ~/.config/docket/config.yaml (user config)
		if _, err := os.Stat(".docket/config.yaml"); err == nil {
			viper.SetConfigFile(".docket/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "docket"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .docket/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".docket/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initRuntime validates the loaded config and brings up logging and
// tracing before any subcommand runs.
func initRuntime(cmd *cobra.Command, _ []string) error {
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "file" && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logging if debug mode enabled (via flag, env var or config)
	if cfg.Debug || debugFlag || os.Getenv("DOCKET_DEBUG") != "" {
		logPath := cfg.LogPath
		if logPath == "" {
			logPath = config.DefaultLogPath()
		}
		if logPath != "" {
			if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
				return fmt.Errorf("creating log directory: %w", err)
			}
			cleanup, err := log.Init(logPath)
			if err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}
			logCleanup = cleanup
			log.Info(log.CatCLI, "Docket starting", "command", cmd.Name(), "logPath", logPath)
		}
	}

	if cfg.Tracing.Enabled {
		provider, err := tracing.NewProvider(cfg.Tracing)
		if err != nil {
			return fmt.Errorf("creating tracing provider: %w", err)
		}
		tracingProvider = provider
		log.Debug(log.CatTrace, "Tracing provider created", "exporter", cfg.Tracing.Exporter)
	}

	return nil
}

// shutdownRuntime flushes tracing and closes the log file after the
// subcommand returns.
func shutdownRuntime(cmd *cobra.Command, _ []string) {
	if tracingProvider != nil {
		if err := tracingProvider.Shutdown(cmd.Context()); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
		tracingProvider = nil
	}
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
}

// cliTracer returns the tracer subcommands wrap their runs in. The
// provider registers itself globally, so this resolves to the real
// tracer when tracing is enabled and to a no-op otherwise.
func cliTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// loadScenario returns the scenario commands seed their registry from:
// the configured scenario file when one is set, the built-in demo
// scenario otherwise.
func loadScenario() (*seed.Scenario, error) {
	if cfg.Seed.ScenarioPath != "" {
		return seed.Load(cfg.Seed.ScenarioPath)
	}
	return seed.Default()
}

// newRegistry materializes the configured scenario into a fresh
// in-memory registry.
func newRegistry() (*tracker.Service, error) {
	svc := tracker.NewService(nil)
	scenario, err := loadScenario()
	if err != nil {
		return nil, err
	}
	if _, err := scenario.Apply(svc); err != nil {
		return nil, fmt.Errorf("applying scenario: %w", err)
	}
	return svc, nil
}

// newReporter builds the read side over a registry with caching
// configured per the loaded config.
func newReporter(svc *tracker.Service) *report.Reporter {
	opts := []report.ReporterOption{}
	if !cfg.Cache.Enabled {
		opts = append(opts, report.WithoutCache())
	} else if cfg.Cache.TTL > 0 {
		opts = append(opts, report.WithCacheTTL(cfg.Cache.TTL))
	}
	return report.NewReporter(svc, opts...)
}

// sortIssues orders issues by id so listings are stable across runs.
func sortIssues(issues []*tracker.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].ID() < issues[j].ID()
	})
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
