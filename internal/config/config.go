// Package config loads and validates the taskbin configuration via viper.
// Configuration lives at ~/.config/taskbin/config.yaml with TASKBIN_*
// environment overrides.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/hpratama/taskbin/internal/task"
)

// Config represents the complete taskbin configuration
type Config struct {
	Bin     BinConfig     `mapstructure:"bin"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Options OptionsConfig `mapstructure:"options"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BinConfig identifies the remote document holding the task collection
type BinConfig struct {
	// BaseURL is the document store endpoint (jsonbin.io v3 bins API)
	BaseURL string `mapstructure:"base_url"`
	// ID is the key of the shared bin document
	ID string `mapstructure:"id"`
	// AccessKey is the store-level API credential sent with every request.
	// This is transport authentication, distinct from the write passcode.
	AccessKey string `mapstructure:"access_key"`
	// TimeoutSeconds bounds each whole-document request
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// AuthConfig controls the local write-permission gate
type AuthConfig struct {
	// Passcode is the shared secret that unlocks mutating operations.
	// It is compared in plaintext; this tool targets a single operator.
	Passcode string `mapstructure:"passcode"`
}

// OptionsConfig carries the closed option sets drafts are validated against
type OptionsConfig struct {
	// Projects a task may belong to
	Projects []string `mapstructure:"projects"`
	// Deploys are the known deployment targets (optional on a task)
	Deploys []string `mapstructure:"deploys"`
	// Statuses are the lifecycle labels
	Statuses []string `mapstructure:"statuses"`
	// DefaultStatus pre-fills the create form
	DefaultStatus string `mapstructure:"default_status"`
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Enabled turns file logging on or off
	Enabled bool `mapstructure:"enabled"`
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
}

// TaskOptions returns the configured closed sets in the form the task
// package validates against.
func (c *Config) TaskOptions() task.Options {
	return task.Options{
		Projects: c.Options.Projects,
		Deploys:  c.Options.Deploys,
		Statuses: c.Options.Statuses,
	}
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Bin: BinConfig{
			BaseURL:        "https://api.jsonbin.io/v3/b",
			ID:             "",
			AccessKey:      "",
			TimeoutSeconds: 15,
		},
		Auth: AuthConfig{
			Passcode: "",
		},
		Options: OptionsConfig{
			Projects: []string{"MyGraPARI", "OM"},
			Deploys:  []string{"staging", "production"},
			Statuses: []string{
				task.StatusCompleted,
				task.StatusInProgress,
				task.StatusPending,
				task.StatusNotStarted,
			},
			DefaultStatus: task.StatusNotStarted,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("bin.base_url", defaults.Bin.BaseURL)
	viper.SetDefault("bin.id", defaults.Bin.ID)
	viper.SetDefault("bin.access_key", defaults.Bin.AccessKey)
	viper.SetDefault("bin.timeout_seconds", defaults.Bin.TimeoutSeconds)

	viper.SetDefault("auth.passcode", defaults.Auth.Passcode)

	viper.SetDefault("options.projects", defaults.Options.Projects)
	viper.SetDefault("options.deploys", defaults.Options.Deploys)
	viper.SetDefault("options.statuses", defaults.Options.Statuses)
	viper.SetDefault("options.default_status", defaults.Options.DefaultStatus)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskbin")
	}
	// Fall back to ~/.config/taskbin
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskbin"
	}
	return filepath.Join(home, ".config", "taskbin")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the path to the directory holding process-durable state:
// the persisted credential and the debug log.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskbin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskbin"
	}
	return filepath.Join(home, ".local", "state", "taskbin")
}
