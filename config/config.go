// Package config provides configuration loading and management for semreg.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semreg/instance"
)

// Config represents the complete semreg configuration
type Config struct {
	Gate       GateConfig       `yaml:"gate" json:"gate"`
	Introspect IntrospectConfig `yaml:"introspect" json:"introspect"`
	Metrics    MetricsConfig    `yaml:"metrics" json:"metrics"`
	Log        LogConfig        `yaml:"log" json:"log"`
}

// GateConfig configures the instance gate
type GateConfig struct {
	// Enforcement selects violation handling: "checked" panics on gate and
	// lifecycle breaches, "unchecked" lets them proceed.
	Enforcement string `yaml:"enforcement" json:"enforcement"`
	// LockOnStart locks the gate once startup registration completes.
	LockOnStart bool `yaml:"lock_on_start" json:"lock_on_start"`
}

// IntrospectConfig configures NATS lifecycle publishing
type IntrospectConfig struct {
	// Enabled turns on lifecycle event publishing and the snapshot service.
	Enabled bool `yaml:"enabled" json:"enabled"`
	// URL is the NATS server URL.
	URL string `yaml:"url" json:"url"`
	// SubjectPrefix namespaces the event and snapshot subjects.
	SubjectPrefix string `yaml:"subject_prefix" json:"subject_prefix"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Enabled serves Prometheus metrics over HTTP.
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Addr is the listen address for the metrics endpoint.
	Addr string `yaml:"addr" json:"addr"`
}

// LogConfig configures logging output
type LogConfig struct {
	// Level is the minimum level to emit (debug, info, warn, error).
	Level string `yaml:"level" json:"level"`
	// Format selects the handler: "text" or "json".
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Gate: GateConfig{
			Enforcement: "checked",
			LockOnStart: true,
		},
		Introspect: IntrospectConfig{
			Enabled:       false,
			URL:           "nats://localhost:4222",
			SubjectPrefix: "semreg",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := instance.ParseEnforcement(c.Gate.Enforcement); err != nil {
		return fmt.Errorf("gate.enforcement: %w", err)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	if c.Introspect.Enabled {
		if c.Introspect.URL == "" {
			return fmt.Errorf("introspect.url is required when introspect is enabled")
		}
		if c.Introspect.SubjectPrefix == "" {
			return fmt.Errorf("introspect.subject_prefix is required when introspect is enabled")
		}
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values; boolean switches merge enable-only)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Gate
	if other.Gate.Enforcement != "" {
		c.Gate.Enforcement = other.Gate.Enforcement
	}
	if other.Gate.LockOnStart {
		c.Gate.LockOnStart = true
	}

	// Introspect
	if other.Introspect.Enabled {
		c.Introspect.Enabled = true
	}
	if other.Introspect.URL != "" {
		c.Introspect.URL = other.Introspect.URL
	}
	if other.Introspect.SubjectPrefix != "" {
		c.Introspect.SubjectPrefix = other.Introspect.SubjectPrefix
	}

	// Metrics
	if other.Metrics.Enabled {
		c.Metrics.Enabled = true
	}
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

// Apply maps the gate settings onto a module. Locking is left to the
// caller, which knows when startup registration completes.
func (g *GateConfig) Apply(m *instance.Module) error {
	mode, err := instance.ParseEnforcement(g.Enforcement)
	if err != nil {
		return err
	}
	m.SetEnforcement(mode)
	return nil
}

// SlogLevel converts the configured level to a slog.Level
func (l *LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Handler builds the slog handler described by the config
func (l *LogConfig) Handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if strings.EqualFold(l.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
