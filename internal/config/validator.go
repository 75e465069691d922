package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

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

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	for i, dir := range c.Exclude.Dirs {
		if strings.TrimSpace(dir) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("exclude.dirs[%d]", i),
				Value:   dir,
				Message: "must not be blank",
			})
		}
	}

	if c.Runner.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "runner.timeout",
			Value:   c.Runner.Timeout,
			Message: "must be zero (no limit) or positive",
		})
	}

	if strings.TrimSpace(c.Bazel.Shell) == "" {
		errors = append(errors, ValidationError{
			Field:   "bazel.shell",
			Value:   c.Bazel.Shell,
			Message: "must not be empty",
		})
	}
	if strings.TrimSpace(c.Bazel.Query) == "" {
		errors = append(errors, ValidationError{
			Field:   "bazel.query",
			Value:   c.Bazel.Query,
			Message: "must not be empty",
		})
	}

	if c.Readme.MaxLines < 1 {
		errors = append(errors, ValidationError{
			Field:   "readme.max_lines",
			Value:   c.Readme.MaxLines,
			Message: "must be at least 1",
		})
	}

	if c.Scan.Depth < 0 {
		errors = append(errors, ValidationError{
			Field:   "scan.depth",
			Value:   c.Scan.Depth,
			Message: "must not be negative",
		})
	}
	if c.Scan.Concurrency < 1 {
		errors = append(errors, ValidationError{
			Field:   "scan.concurrency",
			Value:   c.Scan.Concurrency,
			Message: "must be at least 1",
		})
	}

	if c.Preview.CacheSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "preview.cache_size",
			Value:   c.Preview.CacheSize,
			Message: "must be at least 1",
		})
	}

	return errors
}
