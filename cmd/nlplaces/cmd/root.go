package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/nlplaces/internal/config"
	"github.com/dbsmedya/nlplaces/internal/fetch"
	"github.com/dbsmedya/nlplaces/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile    string
	logLevel   string
	logFormat  string
	outputRoot string
	skipVerify bool
)

// newFetcher builds the transport used by the commands; tests replace it.
var newFetcher = func(cfg *config.Config) fetch.Fetcher {
	return fetch.NewClient(cfg.HTTP)
}

var rootCmd = &cobra.Command{
	Use:   "nlplaces",
	Short: "Dutch neighbourhood, municipality and province lookup generator",
	Long: `A one-shot generator that joins the CBS neighbourhood dataset with the
Wikipedia list of Dutch municipalities and writes static location lookup files.

Features:
  - Neighbourhood to municipality to province hierarchy
  - Province reconciliation with fallback name variants and overrides
  - One LOCATIONS.js artifact per municipality
  - Separate flat list for the capital city
  - Output verification (file count and SHA256 tree digest)`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "nlplaces.yaml",
		"Path to configuration file (optional, defaults are used when missing)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output overrides
	rootCmd.PersistentFlags().StringVarP(&outputRoot, "output", "o", "",
		"Override output root directory")
	rootCmd.PersistentFlags().BoolVar(&skipVerify, "skip-verify", false,
		"Skip output verification after writing")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel   string
	LogFormat  string
	OutputRoot string
	SkipVerify bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		OutputRoot: outputRoot,
		SkipVerify: skipVerify,
	}
}

// loadConfig loads the config file, applies the CLI overrides, validates the
// result and builds the logger.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.OutputRoot, overrides.SkipVerify)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
