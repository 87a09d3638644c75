package config

import (
	"fmt"
	"net/url"
	"strings"

	"pmconsole/internal/busy"
	"pmconsole/internal/logging"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	var c issueCollector

	if cfg.Version != 1 {
		c.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if parsed, err := url.Parse(cfg.BaseURL); err != nil {
		c.add("base_url", err.Error())
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		c.add("base_url", "must be an http or https URL")
	} else if parsed.Host == "" {
		c.add("base_url", "host is required")
	}
	if cfg.RequestTimeout < 0 {
		c.add("request_timeout", "must be positive")
	}
	if cfg.PollInterval < 0 {
		c.add("poll_interval", "must be positive")
	}
	if cfg.AlertTTL < 0 {
		c.add("alert_ttl", "must be positive")
	}
	if _, err := busy.ParseMode(cfg.BusyMode); err != nil {
		c.add("busy_mode", err.Error())
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		c.add("log_level", err.Error())
	}
	switch cfg.UI.Mode {
	case "auto", "live", "plain":
	default:
		c.add("ui.mode", fmt.Sprintf("invalid mode %q (expected auto|live|plain)", cfg.UI.Mode))
	}
	if !strings.HasPrefix(cfg.UI.StartPath, "/") {
		c.add("ui.start_path", "must start with /")
	}
	return c.result()
}
