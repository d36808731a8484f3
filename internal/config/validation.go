package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSources()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateHTTP()...)
	errors = append(errors, c.validateCapital()...)
	errors = append(errors, c.validateVerification()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSources() ValidationErrors {
	var errors ValidationErrors

	sources := []struct {
		field string
		value string
	}{
		{"sources.neighbourhoods", c.Sources.Neighbourhoods},
		{"sources.municipalities", c.Sources.Municipalities},
		{"sources.capital", c.Sources.Capital},
	}
	for _, s := range sources {
		if msg := checkURL(s.value); msg != "" {
			errors = append(errors, ValidationError{Field: s.field, Message: msg})
		}
	}

	return errors
}

// checkURL returns a non-empty message when raw is not an absolute http(s) URL.
func checkURL(raw string) string {
	if raw == "" {
		return "url is required"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "url scheme must be 'http' or 'https'"
	}
	if u.Host == "" {
		return "url must include a host"
	}
	return ""
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.Output.Root) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.root",
			Message: "output root is required",
		})
	}

	if msg := checkFileName(c.Output.ArtifactName); msg != "" {
		errors = append(errors, ValidationError{Field: "output.artifact_name", Message: msg})
	}

	if strings.TrimSpace(c.Output.Country) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.country",
			Message: "country label is required",
		})
	}

	return errors
}

func checkFileName(name string) string {
	if name == "" {
		return "file name is required"
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "file name must not contain path separators"
	}
	return ""
}

func (c *Config) validateHTTP() ValidationErrors {
	var errors ValidationErrors

	if c.HTTP.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "http.timeout_seconds",
			Message: "timeout must be >= 0",
		})
	}

	return errors
}

func (c *Config) validateCapital() ValidationErrors {
	var errors ValidationErrors

	if msg := checkFileName(c.Capital.Artifact); msg != "" {
		errors = append(errors, ValidationError{Field: "capital.artifact", Message: msg})
	}

	if strings.TrimSpace(c.Capital.Suffix) == "" {
		errors = append(errors, ValidationError{
			Field:   "capital.suffix",
			Message: "suffix is required",
		})
	}

	if c.Capital.MinCardinality < 1 {
		errors = append(errors, ValidationError{
			Field:   "capital.min_cardinality",
			Message: "min_cardinality must be >= 1",
		})
	}

	return errors
}

func (c *Config) validateVerification() ValidationErrors {
	var errors ValidationErrors

	validMethods := map[string]bool{"count": true, "sha256": true, "skip": true, "": true}
	if !validMethods[c.Verification.Method] {
		errors = append(errors, ValidationError{
			Field:   "verification.method",
			Message: "method must be 'count', 'sha256', or 'skip'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
