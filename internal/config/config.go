// Package config loads loom settings from ~/.loom/config.yaml with LOOM_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/ui"
)

// EnvPrefix prefixes environment overrides, e.g. LOOM_THEME=nord.
const EnvPrefix = "LOOM"

// Config holds the application configuration
type Config struct {
	Theme                 string `mapstructure:"theme" yaml:"theme"`
	FrameIntervalMs       int    `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms"`
	Prompt                string `mapstructure:"prompt" yaml:"prompt"`
	HistoryLimit          int    `mapstructure:"history_limit" yaml:"history_limit"`
	NotifyAfterSeconds    int    `mapstructure:"notify_after_seconds" yaml:"notify_after_seconds"`       // 0 disables notifications
	CommandTimeoutSeconds int    `mapstructure:"command_timeout_seconds" yaml:"command_timeout_seconds"` // 0 means no timeout
	MaxSuggestions        int    `mapstructure:"max_suggestions" yaml:"max_suggestions"`
	MinCharacters         int    `mapstructure:"min_characters" yaml:"min_characters"`
	NavigationDepth       int    `mapstructure:"navigation_depth" yaml:"navigation_depth"`
	MaxColumns            int    `mapstructure:"max_columns" yaml:"max_columns"`
	DataFile              string `mapstructure:"data_file" yaml:"data_file,omitempty"`       // work item fixture; empty uses the sample set
	WorkflowDir           string `mapstructure:"workflow_dir" yaml:"workflow_dir,omitempty"` // directory of workflow tables
	Debug                 bool   `mapstructure:"debug" yaml:"debug,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// Dir returns the path to the config directory
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".loom"), nil
}

// Path returns the path to the default config file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme:                 string(ui.DefaultThemeName),
		FrameIntervalMs:       50,
		Prompt:                ui.DefaultPrompt,
		HistoryLimit:          ui.DefaultHistoryLimit,
		NotifyAfterSeconds:    10,
		CommandTimeoutSeconds: 0,
		MaxSuggestions:        ui.DefaultMaxSuggestions,
		MinCharacters:         ui.DefaultMinCharacters,
		NavigationDepth:       ui.DefaultNavigationDepth,
		MaxColumns:            ui.DefaultMaxColumns,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("frame_interval_ms", d.FrameIntervalMs)
	v.SetDefault("prompt", d.Prompt)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("notify_after_seconds", d.NotifyAfterSeconds)
	v.SetDefault("command_timeout_seconds", d.CommandTimeoutSeconds)
	v.SetDefault("max_suggestions", d.MaxSuggestions)
	v.SetDefault("min_characters", d.MinCharacters)
	v.SetDefault("navigation_depth", d.NavigationDepth)
	v.SetDefault("max_columns", d.MaxColumns)
	v.SetDefault("data_file", "")
	v.SetDefault("workflow_dir", "")
	v.SetDefault("debug", false)
}

// Load reads ~/.loom/config.yaml. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.loom/config.yaml", err)
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, applies LOOM_* environment overrides
// and validates the result. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	cfg.filePath = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := ui.BuiltinPalettes[ui.ThemeName(c.Theme)]; !ok {
		return errors.ConfigInvalid(fmt.Sprintf("unknown theme %q", c.Theme))
	}
	if c.FrameIntervalMs < 10 || c.FrameIntervalMs > 1000 {
		return errors.ConfigInvalid(fmt.Sprintf("frame_interval_ms must be between 10 and 1000, got %d", c.FrameIntervalMs))
	}
	if c.HistoryLimit < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("history_limit must be positive, got %d", c.HistoryLimit))
	}
	if c.NotifyAfterSeconds < 0 {
		return errors.ConfigInvalid("notify_after_seconds cannot be negative")
	}
	if c.CommandTimeoutSeconds < 0 {
		return errors.ConfigInvalid("command_timeout_seconds cannot be negative")
	}
	if c.MaxSuggestions < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("max_suggestions must be positive, got %d", c.MaxSuggestions))
	}
	if c.MinCharacters < 0 {
		return errors.ConfigInvalid("min_characters cannot be negative")
	}
	if c.NavigationDepth < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("navigation_depth must be at least 1, got %d", c.NavigationDepth))
	}
	if c.MaxColumns < 2 {
		return errors.ConfigInvalid(fmt.Sprintf("max_columns must be at least 2, got %d", c.MaxColumns))
	}
	return nil
}

// Save writes the config as YAML to the file it was loaded from, or to
// ~/.loom/config.yaml.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		p, err := Path()
		if err != nil {
			return errors.ConfigSaveFailed("~/.loom/config.yaml", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// FilePath returns where Save writes.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath changes where Save writes.
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() ui.ThemeName {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ui.ThemeName(c.Theme)
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme ui.ThemeName) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = string(theme)
}

// FrameInterval returns the delay between animation frames.
func (c *Config) FrameInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// NotifyAfter returns how long a console command must run before its
// completion raises a desktop notification. Zero disables them.
func (c *Config) NotifyAfter() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.NotifyAfterSeconds) * time.Second
}

// CommandTimeout returns the console command deadline, or zero for none.
func (c *Config) CommandTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// IsDebug reports whether debug logging is on.
func (c *Config) IsDebug() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Debug
}

// SetDebug turns debug logging on or off.
func (c *Config) SetDebug(debug bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Debug = debug
}
