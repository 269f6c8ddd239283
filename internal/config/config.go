// Package config provides configuration management for Success.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Success application.
type Config struct {
	Editor          string             `mapstructure:"editor"`
	FileManager     string             `mapstructure:"file_manager"`
	DefaultDuration Duration           `mapstructure:"default_duration"`
	Notifications   NotificationConfig `mapstructure:"notifications"`
	Storage         StorageConfig      `mapstructure:"storage"`
	Theme           ThemeConfig        `mapstructure:"theme"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	ArchiveDir string `mapstructure:"archive_dir"`
}

// ThemeConfig holds theme customization settings.
type ThemeConfig struct {
	ColorWork     string `mapstructure:"color_work"`
	ColorReward   string `mapstructure:"color_reward"`
	ColorTimer    string `mapstructure:"color_timer"`
	ColorSelected string `mapstructure:"color_selected"`
	ColorDim      string `mapstructure:"color_dim"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:     "#7C6FE0",
		ColorReward:   "#4ECDC4",
		ColorTimer:    "#A78BFA",
		ColorSelected: "#F5F5F5",
		ColorDim:      "#6B7280",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Editor:          "nvim",
		FileManager:     "",
		DefaultDuration: Duration(25 * time.Minute),
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			ArchiveDir: "~/.success",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.ArchiveDir, err = expandHome(cfg.Storage.ArchiveDir)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("editor", cfg.Editor)
	viper.Set("file_manager", cfg.FileManager)
	viper.Set("default_duration", cfg.DefaultDuration.String())
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("storage.archive_dir", cfg.Storage.ArchiveDir)
	viper.Set("theme.color_work", cfg.Theme.ColorWork)
	viper.Set("theme.color_reward", cfg.Theme.ColorReward)
	viper.Set("theme.color_timer", cfg.Theme.ColorTimer)
	viper.Set("theme.color_selected", cfg.Theme.ColorSelected)
	viper.Set("theme.color_dim", cfg.Theme.ColorDim)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "success", "config.toml"), nil
}

// EditorCommand returns the configured editor, falling back to
// $EDITOR and then nvim.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "nvim"
}

// ExpandArchiveDir resolves the configured archive directory,
// expanding a leading ~. It falls back to ~/.success when the
// configured value is empty or cannot be resolved.
func ExpandArchiveDir(cfg *Config) string {
	dir, err := expandHome(cfg.Storage.ArchiveDir)
	if err != nil {
		return ".success"
	}
	return dir
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		path = "~/.success"
	}
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, path[1:]), nil
	}
	return path, nil
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("editor", "nvim")
	viper.SetDefault("file_manager", "")
	viper.SetDefault("default_duration", "25m0s")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("storage.archive_dir", "~/.success")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_work", defaults.ColorWork)
	viper.SetDefault("theme.color_reward", defaults.ColorReward)
	viper.SetDefault("theme.color_timer", defaults.ColorTimer)
	viper.SetDefault("theme.color_selected", defaults.ColorSelected)
	viper.SetDefault("theme.color_dim", defaults.ColorDim)
}
