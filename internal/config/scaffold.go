package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
base_url: "http://127.0.0.1:5000"
request_timeout: 15s
poll_interval: 30s
alert_ttl: 5s
busy_mode: counted
journal_path: "%[1]s/%[2]s"
log_file: "%[1]s/%[3]s"
log_level: info
ui:
  mode: auto
  tooltips: true
  no_color: false
  start_path: "/projects"
`

// Scaffold writes the default config to configPath. It refuses to
// overwrite an existing file.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(defaultConfig, ConfigDirName, DefaultJournalName, DefaultLogName)), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
