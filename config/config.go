// Package config loads movement tuning from YAML and watches it for live
// edits. Malformed values are clamped at the boundary, never detected later
// during simulation.
package config

import (
	"fmt"
	"os"

	"github.com/milk9111/locomotion/controller"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk tuning file.
type Config struct {
	Controller controller.Tuning `yaml:"controller"`
}

// Default returns the built-in tuning.
func Default() Config {
	return Config{Controller: controller.DefaultTuning()}
}

// Load reads and sanitizes a config file.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and sanitizes raw YAML.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse: %w", err)
	}
	cfg.Controller.Sanitize()
	return cfg, nil
}
