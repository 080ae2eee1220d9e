package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "bin.id")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateBin()...)
	errors = append(errors, c.validateOptions()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateBin() []ValidationError {
	var errors []ValidationError

	if c.Bin.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "bin.base_url",
			Value:   c.Bin.BaseURL,
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(c.Bin.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "bin.base_url",
			Value:   c.Bin.BaseURL,
			Message: "must be an absolute URL",
		})
	}

	if c.Bin.ID == "" {
		errors = append(errors, ValidationError{
			Field:   "bin.id",
			Value:   c.Bin.ID,
			Message: "must not be empty; set it to the shared bin's document key",
		})
	}

	if c.Bin.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "bin.timeout_seconds",
			Value:   c.Bin.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

func (c *Config) validateOptions() []ValidationError {
	var errors []ValidationError

	if len(c.Options.Projects) == 0 {
		errors = append(errors, ValidationError{
			Field:   "options.projects",
			Value:   c.Options.Projects,
			Message: "must list at least one project",
		})
	}

	if len(c.Options.Statuses) == 0 {
		errors = append(errors, ValidationError{
			Field:   "options.statuses",
			Value:   c.Options.Statuses,
			Message: "must list at least one status",
		})
	}

	if c.Options.DefaultStatus != "" && !slices.Contains(c.Options.Statuses, c.Options.DefaultStatus) {
		errors = append(errors, ValidationError{
			Field:   "options.default_status",
			Value:   c.Options.DefaultStatus,
			Message: "must be a member of options.statuses",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
