package config

import "time"

// Config is the client configuration read from .pmconsole/config.yml.
type Config struct {
	Version        int           `yaml:"version"`
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	AlertTTL       time.Duration `yaml:"alert_ttl"`
	BusyMode       string        `yaml:"busy_mode"`
	JournalPath    string        `yaml:"journal_path"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	UI             UIConfig      `yaml:"ui"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Mode      string `yaml:"mode"`
	Tooltips  *bool  `yaml:"tooltips"`
	NoColor   bool   `yaml:"no_color"`
	StartPath string `yaml:"start_path"`
}

// TooltipsEnabled reports whether key help is rendered.
func (u UIConfig) TooltipsEnabled() bool {
	return u.Tooltips == nil || *u.Tooltips
}
