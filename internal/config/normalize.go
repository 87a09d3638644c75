package config

import (
	"path/filepath"
	"strings"
	"time"

	"pmconsole/internal/alert"
	"pmconsole/internal/poll"
)

// Defaults applied by Normalize.
const (
	DefaultBaseURL        = "http://127.0.0.1:5000"
	DefaultRequestTimeout = 15 * time.Second
	DefaultStartPath      = "/projects"
)

// Default returns a normalized config for running without a config file.
func Default() Config {
	var cfg Config
	Normalize(&cfg, "")
	return cfg
}

// Normalize fills defaults and anchors relative paths at root. The log
// file defaults to .pmconsole/pmconsole.log under root; without a root
// (no config file) logs are discarded. The journal stays off unless set.
func Normalize(cfg *Config, root string) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = poll.DefaultInterval
	}
	if cfg.AlertTTL == 0 {
		cfg.AlertTTL = alert.DefaultTTL
	}
	cfg.BusyMode = strings.ToLower(strings.TrimSpace(cfg.BusyMode))
	if cfg.BusyMode == "" {
		cfg.BusyMode = "counted"
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = "auto"
	}
	if cfg.UI.StartPath == "" {
		cfg.UI.StartPath = DefaultStartPath
	}
	if cfg.UI.Tooltips == nil {
		enabled := true
		cfg.UI.Tooltips = &enabled
	}
	if cfg.LogFile == "" && root != "" {
		cfg.LogFile = filepath.Join(ConfigDirName, DefaultLogName)
	}
	cfg.JournalPath = resolveRelative(root, cfg.JournalPath)
	cfg.LogFile = resolveRelative(root, cfg.LogFile)
}
