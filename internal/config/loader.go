package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFiles are loaded in order before the config file is read; later files do not
// override variables that are already set.
var envFiles = []string{".env", ".env.local"}

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
// A missing file is not an error: the hardcoded defaults are returned instead.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to stat config file: %w", err)
			}
			configPath = ""
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)

	return cfg, nil
}

func loadEnvFiles() {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// bracedEnvVarPattern matches ${VAR_NAME} only. URLs carry OData options such
// as "$top" that must never be read as variables.
var bracedEnvVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
// Source URLs only accept the braced form.
func substituteEnvVars(cfg *Config) {
	cfg.Sources.Neighbourhoods = expandBracedEnvVar(cfg.Sources.Neighbourhoods)
	cfg.Sources.Municipalities = expandBracedEnvVar(cfg.Sources.Municipalities)
	cfg.Sources.Capital = expandBracedEnvVar(cfg.Sources.Capital)

	cfg.Output.Root = expandEnvVar(cfg.Output.Root)
	cfg.Reconcile.TablesFile = expandEnvVar(cfg.Reconcile.TablesFile)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
// Unknown variables are left untouched.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// expandBracedEnvVar expands ${VAR} and leaves bare $NAME sequences alone.
// Unknown variables are left untouched.
func expandBracedEnvVar(s string) string {
	return bracedEnvVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if value, exists := os.LookupEnv(match[2 : len(match)-1]); exists {
			return value
		}
		return match
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, outputRoot string, skipVerify bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if outputRoot != "" {
		c.Output.Root = outputRoot
	}
	if skipVerify {
		c.Verification.SkipVerification = true
	}
}

// VerificationMethod returns the effective verification method.
func (c *Config) VerificationMethod() string {
	if c.Verification.SkipVerification {
		return "skip"
	}
	return c.Verification.Method
}
