// Package config handles configuration for the playground.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/diogo/playground/internal/errors"
)

// MarkdownConfig configures optional markdown rendering of agent text
type MarkdownConfig struct {
	Enabled          bool   `json:"enabled"`           // Render agent text as markdown
	Style            string `json:"style"`             // glamour style: "dark", "light", "dracula", "notty", "ascii"
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// LogConfig configures the log sink. The TUI owns stdout, so logs go to a file.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
}

// Config represents the user configuration
type Config struct {
	// UserName is the display name shown on the user's own messages.
	// Empty means the generic "You" label is used.
	UserName        string         `json:"user_name"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	AgentStreamID   int            `json:"agent_stream_id"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
	Log             LogConfig      `json:"log,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Enabled:          false,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		UserName:        "",
		TUITheme:        "tokyonight",
		CopyToClipboard: false,
		AgentStreamID:   0,
		Markdown:        DefaultMarkdownConfig(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".playground"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path from config, defaulting to the config dir
func GetLogPath(cfg Config) (string, error) {
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "playground.log"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// keyAccessor reads and writes one addressable config key
type keyAccessor struct {
	get func(cfg Config) string
	set func(cfg *Config, value string) error
}

func boolAccessor(key string, field func(cfg *Config) *bool) keyAccessor {
	return keyAccessor{
		get: func(cfg Config) string { return strconv.FormatBool(*field(&cfg)) },
		set: func(cfg *Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return apperrors.NewInvalidValueError(key, "expected true or false")
			}
			*field(cfg) = b
			return nil
		},
	}
}

func stringAccessor(field func(cfg *Config) *string) keyAccessor {
	return keyAccessor{
		get: func(cfg Config) string { return *field(&cfg) },
		set: func(cfg *Config, value string) error {
			*field(cfg) = value
			return nil
		},
	}
}

var keys = map[string]keyAccessor{
	"user_name": stringAccessor(func(c *Config) *string { return &c.UserName }),
	"tui_theme": {
		get: func(cfg Config) string { return cfg.TUITheme },
		set: func(cfg *Config, value string) error {
			for _, name := range AvailableTUIThemes() {
				if name == value {
					cfg.TUITheme = value
					return nil
				}
			}
			return apperrors.NewInvalidValueError("tui_theme",
				fmt.Sprintf("expected one of %s", strings.Join(AvailableTUIThemes(), ", ")))
		},
	},
	"copy_to_clipboard": boolAccessor("copy_to_clipboard", func(c *Config) *bool { return &c.CopyToClipboard }),
	"agent_stream_id": {
		get: func(cfg Config) string { return strconv.Itoa(cfg.AgentStreamID) },
		set: func(cfg *Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return apperrors.NewInvalidValueError("agent_stream_id", "expected an integer")
			}
			cfg.AgentStreamID = n
			return nil
		},
	},
	"markdown.enabled":           boolAccessor("markdown.enabled", func(c *Config) *bool { return &c.Markdown.Enabled }),
	"markdown.style":             stringAccessor(func(c *Config) *string { return &c.Markdown.Style }),
	"markdown.enable_emoji":      boolAccessor("markdown.enable_emoji", func(c *Config) *bool { return &c.Markdown.EnableEmoji }),
	"markdown.preserve_newlines": boolAccessor("markdown.preserve_newlines", func(c *Config) *bool { return &c.Markdown.PreserveNewLines }),
	"log.level":                  stringAccessor(func(c *Config) *string { return &c.Log.Level }),
	"log.file":                   stringAccessor(func(c *Config) *string { return &c.Log.File }),
}

// Keys returns the addressable config keys in sorted order
func Keys() []string {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Get returns the string form of a config key
func Get(cfg Config, key string) (string, error) {
	acc, ok := keys[key]
	if !ok {
		return "", apperrors.NewUnknownKeyError(key)
	}
	return acc.get(cfg), nil
}

// Set parses value and assigns it to key in cfg
func Set(cfg *Config, key, value string) error {
	acc, ok := keys[key]
	if !ok {
		return apperrors.NewUnknownKeyError(key)
	}
	return acc.set(cfg, value)
}

// AvailableTUIThemes returns the names accepted by tui_theme
func AvailableTUIThemes() []string {
	return []string{"tokyonight", "catppuccin", "nord", "dracula"}
}
