// Package config provides configuration types, defaults and loading for panejump.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/guzus/panejump/internal/log"
)

// EnvPrefix prefixes environment overrides, e.g. PANEJUMP_SHOW_HISTORY.
const EnvPrefix = "PANEJUMP"

// MaxColumns bounds the number of pane columns opened at startup.
const MaxColumns = 4

// Config holds all configuration options for panejump.
type Config struct {
	ShowHistory bool            `mapstructure:"show_history"`
	Debug       bool            `mapstructure:"debug"`
	LogPath     string          `mapstructure:"log_path"`
	LogLevel    string          `mapstructure:"log_level"`
	Theme       ThemeConfig     `mapstructure:"theme"`
	Workspace   WorkspaceConfig `mapstructure:"workspace"`
}

// ThemeConfig holds the colors of the terminal host. Values are hex colors.
type ThemeConfig struct {
	HintForeground string `mapstructure:"hint_foreground"`
	HintBackground string `mapstructure:"hint_background"`
	Border         string `mapstructure:"border"`
	ActiveBorder   string `mapstructure:"active_border"`
	Prompt         string `mapstructure:"prompt"`
}

// WorkspaceConfig controls the terminal host's panes.
type WorkspaceConfig struct {
	Columns        int           `mapstructure:"columns"`     // columns opened at startup
	ScrollStep     int           `mapstructure:"scroll_step"` // lines per up/down key
	Reload         bool          `mapstructure:"reload"`      // reload panes when their file changes
	ReloadDebounce time.Duration `mapstructure:"reload_debounce"`
}

// Defaults returns a Config with the built-in values.
func Defaults() Config {
	return Config{
		ShowHistory: true,
		LogPath:     "debug.log",
		LogLevel:    "debug",
		Theme: ThemeConfig{
			HintForeground: "#efefef",
			HintBackground: "#555555",
			Border:         "#444444",
			ActiveBorder:   "#1DA1F2",
			Prompt:         "#FFAD1F",
		},
		Workspace: WorkspaceConfig{
			Columns:        2,
			ScrollStep:     1,
			Reload:         true,
			ReloadDebounce: 100 * time.Millisecond,
		},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("show_history", d.ShowHistory)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_path", d.LogPath)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("theme.hint_foreground", d.Theme.HintForeground)
	v.SetDefault("theme.hint_background", d.Theme.HintBackground)
	v.SetDefault("theme.border", d.Theme.Border)
	v.SetDefault("theme.active_border", d.Theme.ActiveBorder)
	v.SetDefault("theme.prompt", d.Theme.Prompt)
	v.SetDefault("workspace.columns", d.Workspace.Columns)
	v.SetDefault("workspace.scroll_step", d.Workspace.ScrollStep)
	v.SetDefault("workspace.reload", d.Workspace.Reload)
	v.SetDefault("workspace.reload_debounce", d.Workspace.ReloadDebounce)
}

// DefaultPath returns ~/.config/panejump/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "panejump", "config.yaml"), nil
}

// LocalPath is the per-directory config file, checked before the home one.
const LocalPath = ".panejump/config.yaml"

// Load reads the configuration into v. An explicit path must exist. Without
// one, .panejump/config.yaml is used when present, then the home config.
// A missing implicit config file is not an error. It returns the file used,
// or "" when none was read.
func Load(v *viper.Viper, path string) (Config, string, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(LocalPath):
		v.SetConfigFile(LocalPath)
	default:
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "panejump"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, "", err
	}
	used := v.ConfigFileUsed()
	if used != "" && !fileExists(used) {
		used = ""
	}
	log.Info(log.CatConfig, "config loaded", "file", used)
	return cfg, used, nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks cfg for errors.
func Validate(cfg Config) error {
	colors := []struct {
		name  string
		value string
	}{
		{"theme.hint_foreground", cfg.Theme.HintForeground},
		{"theme.hint_background", cfg.Theme.HintBackground},
		{"theme.border", cfg.Theme.Border},
		{"theme.active_border", cfg.Theme.ActiveBorder},
		{"theme.prompt", cfg.Theme.Prompt},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("%s: invalid hex color %q", c.name, c.value)
		}
	}

	if cfg.Workspace.Columns < 1 || cfg.Workspace.Columns > MaxColumns {
		return fmt.Errorf("workspace.columns: must be between 1 and %d, got %d", MaxColumns, cfg.Workspace.Columns)
	}
	if cfg.Workspace.ScrollStep < 1 {
		return fmt.Errorf("workspace.scroll_step: must be positive, got %d", cfg.Workspace.ScrollStep)
	}
	if cfg.Workspace.ReloadDebounce < 0 {
		return fmt.Errorf("workspace.reload_debounce: must not be negative, got %s", cfg.Workspace.ReloadDebounce)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if cfg.Debug && cfg.LogPath == "" {
		return errors.New("log_path: required when debug is enabled")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
