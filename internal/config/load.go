package config

import (
	"fmt"
	"os"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg, RootFromConfigPath(path))
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
