package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var configValidate = validator.New()

// Config holds run settings. Adjust compute units and work-group width to
// trade dispatch overhead for balance across units.
type Config struct {
	// Mode is "ranges" (seed line is first/count pairs) or "seeds".
	Mode string `yaml:"mode" validate:"oneof=ranges seeds"`
	// ComputeUnits is the number of parallel compute units; 0 = GOMAXPROCS.
	ComputeUnits int `yaml:"compute_units" validate:"gte=0"`
	// WorkGroupSize is the work-group width; 0 = DefaultWorkGroupSize.
	WorkGroupSize int `yaml:"work_group_size" validate:"gte=0"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// Verbose prints the per-range table to stderr.
	Verbose bool `yaml:"verbose"`
	// JSON writes a RunOutput document instead of the bare minimum.
	JSON bool `yaml:"json"`
	// MetricsOut, when set, receives a Prometheus textfile after the run.
	MetricsOut string `yaml:"metrics_out"`
	// Trace exports spans to stderr.
	Trace bool `yaml:"trace"`
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Mode:     "ranges",
		LogLevel: "warn",
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RunMode converts the Mode string.
func (c Config) RunMode() Mode {
	m, _ := parseMode(c.Mode)
	return m
}

// DeviceConfig returns the device settings.
func (c Config) DeviceConfig() DeviceConfig {
	return DeviceConfig{ComputeUnits: c.ComputeUnits, WorkGroupSize: c.WorkGroupSize}
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}
