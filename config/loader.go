package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "semreg.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/semreg"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/semreg/config.yaml)
// 3. Project config (semreg.yaml in current or parent directories)
// 4. Environment variables (SEMREG_*)
func (l *Loader) Load() (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Load user config
	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	// Load project config
	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// Environment overrides
	l.applyEnv(config)

	// Validate final config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	// Check if it already exists
	if _, err := os.Stat(userConfigPath); err == nil {
		return nil // Already exists
	}

	// Create default config
	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// WatchTarget returns the config file a watcher should follow: the project
// file when one exists, the user file otherwise.
func (l *Loader) WatchTarget() string {
	if p := l.findProjectConfig(); p != "" {
		return p
	}
	return l.userConfigPath()
}

// applyEnv applies SEMREG_* environment variable overrides
func (l *Loader) applyEnv(config *Config) {
	if v := os.Getenv("SEMREG_NATS_URL"); v != "" {
		config.Introspect.URL = v
	}
	if v := os.Getenv("SEMREG_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("SEMREG_GATE_ENFORCEMENT"); v != "" {
		config.Gate.Enforcement = v
	}
	if v := os.Getenv("SEMREG_GATE_LOCK_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Gate.LockOnStart = b
		} else {
			l.logger.Warn("Invalid SEMREG_GATE_LOCK_ON_START value", slog.String("value", v))
		}
	}
	if v := os.Getenv("SEMREG_INTROSPECT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Introspect.Enabled = b
		} else {
			l.logger.Warn("Invalid SEMREG_INTROSPECT_ENABLED value", slog.String("value", v))
		}
	}
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for semreg.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
