package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigFile(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	tests := []struct {
		name     string
		cfgValue string
		want     string
	}{
		{
			name:     "empty config file",
			cfgValue: "",
			want:     "",
		},
		{
			name:     "custom config file",
			cfgValue: "/path/to/custom.yaml",
			want:     "/path/to/custom.yaml",
		},
		{
			name:     "config file with spaces",
			cfgValue: "/path/to/my config.yaml",
			want:     "/path/to/my config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile = tt.cfgValue
			assert.Equal(t, tt.want, GetConfigFile())
		})
	}
}

func TestGetCLIOverrides(t *testing.T) {
	originalLogLevel := logLevel
	originalLogFormat := logFormat
	originalOutputRoot := outputRoot
	originalSkipVerify := skipVerify
	defer func() {
		logLevel = originalLogLevel
		logFormat = originalLogFormat
		outputRoot = originalOutputRoot
		skipVerify = originalSkipVerify
	}()

	tests := []struct {
		name       string
		logLevel   string
		logFormat  string
		outputRoot string
		skipVerify bool
		want       CLIOverrides
	}{
		{
			name: "empty overrides",
			want: CLIOverrides{},
		},
		{
			name:      "logging overrides",
			logLevel:  "debug",
			logFormat: "json",
			want:      CLIOverrides{LogLevel: "debug", LogFormat: "json"},
		},
		{
			name:       "output overrides",
			outputRoot: "/tmp/locations",
			skipVerify: true,
			want:       CLIOverrides{OutputRoot: "/tmp/locations", SkipVerify: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logLevel = tt.logLevel
			logFormat = tt.logFormat
			outputRoot = tt.outputRoot
			skipVerify = tt.skipVerify
			assert.Equal(t, tt.want, GetCLIOverrides())
		})
	}
}

func TestRootCommandStructure(t *testing.T) {
	assert.Equal(t, "nlplaces", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Equal(t, Version, rootCmd.Version)

	flags := rootCmd.PersistentFlags()
	for _, name := range []string{"config", "log-level", "log-format", "output", "skip-verify"} {
		assert.NotNil(t, flags.Lookup(name), "missing persistent flag %s", name)
	}
	assert.Equal(t, "c", flags.Lookup("config").Shorthand)
	assert.Equal(t, "o", flags.Lookup("output").Shorthand)
}

func TestRootSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "capital", "dry-run", "verify", "validate", "version"} {
		assert.True(t, names[want], "%s command should be added to root command", want)
	}
}
