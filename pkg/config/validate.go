package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "schedule.cleanup_at").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed (%d errors):", len(e.Errors)))
	for _, fe := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(fe.Error())
	}
	return sb.String()
}

// Validate checks a configuration for invalid field values. It returns a
// ValidationError listing every problem found, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Database.Path == "" {
		errs = append(errs, FieldError{Field: "database.path", Message: "must not be empty"})
	}
	if cfg.Artifacts.DeletedDir == "" {
		errs = append(errs, FieldError{Field: "artifacts.deleted_dir", Message: "must not be empty"})
	}
	if cfg.Schedule.CheckInterval <= 0 {
		errs = append(errs, FieldError{
			Field:   "schedule.check_interval",
			Message: fmt.Sprintf("must be positive, got %s", cfg.Schedule.CheckInterval),
		})
	}
	if _, _, err := cfg.Schedule.CleanupTime(); err != nil {
		errs = append(errs, FieldError{Field: "schedule.cleanup_at", Message: err.Error()})
	}
	if cfg.Retention.Days <= 0 {
		errs = append(errs, FieldError{
			Field:   "retention.days",
			Message: fmt.Sprintf("must be positive, got %d", cfg.Retention.Days),
		})
	}
	if cfg.Checker.FeedURL != "" {
		if _, err := url.ParseRequestURI(cfg.Checker.FeedURL); err != nil {
			errs = append(errs, FieldError{Field: "checker.feed_url", Message: err.Error()})
		}
	}
	switch cfg.Telemetry.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.log_level",
			Message: fmt.Sprintf("unknown level %q", cfg.Telemetry.LogLevel),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
