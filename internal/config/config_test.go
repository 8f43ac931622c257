package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/diogo/playground/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UserName != "" {
		t.Errorf("Expected empty UserName, got '%s'", cfg.UserName)
	}
	if cfg.TUITheme != "tokyonight" {
		t.Errorf("Expected TUITheme 'tokyonight', got '%s'", cfg.TUITheme)
	}
	if cfg.Markdown.Enabled {
		t.Error("Expected markdown rendering to be off by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level 'info', got '%s'", cfg.Log.Level)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("GetConfigPath() returned relative path: %s", path)
	}
	if filepath.Base(path) != "config.json" {
		t.Errorf("GetConfigPath() should end with config.json, got %s", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".playground" {
		t.Errorf("GetConfigPath() should live in .playground, got %s", path)
	}
}

func TestGetLogPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	path, err := GetLogPath(DefaultConfig())
	if err != nil {
		t.Fatalf("GetLogPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, ".playground", "playground.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	cfg := DefaultConfig()
	cfg.Log.File = "/var/tmp/custom.log"
	path, _ = GetLogPath(cfg)
	if path != "/var/tmp/custom.log" {
		t.Errorf("GetLogPath() with override = %s", path)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() without file = %+v, want defaults", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	cfg := DefaultConfig()
	cfg.UserName = "alice"
	cfg.TUITheme = "nord"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	configPath := filepath.Join(tmpDir, ".playground", "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var saved Config
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Failed to parse saved config: %v", err)
	}
	if saved.UserName != "alice" {
		t.Errorf("UserName = %s, want alice", saved.UserName)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("File permissions = %o, want 600", perm)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".playground")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if cfg != DefaultConfig() {
		t.Error("Expected defaults on parse failure")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configDir := filepath.Join(tmpDir, ".playground")
	_ = os.MkdirAll(configDir, 0o700)
	_ = os.WriteFile(filepath.Join(configDir, "config.json"), []byte(`{"user_name":"bob"}`), 0o600)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.UserName != "bob" {
		t.Errorf("UserName = %s, want bob", cfg.UserName)
	}
	if cfg.TUITheme != "tokyonight" {
		t.Errorf("TUITheme = %s, want default", cfg.TUITheme)
	}
}

func TestGetSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr error
	}{
		{"user_name", "alice", "alice", nil},
		{"user_name", "", "", nil},
		{"tui_theme", "dracula", "dracula", nil},
		{"tui_theme", "solarized", "", apperrors.ErrInvalidValue},
		{"copy_to_clipboard", "true", "true", nil},
		{"copy_to_clipboard", "maybe", "", apperrors.ErrInvalidValue},
		{"agent_stream_id", "100", "100", nil},
		{"agent_stream_id", "x", "", apperrors.ErrInvalidValue},
		{"markdown.enabled", "true", "true", nil},
		{"markdown.style", "light", "light", nil},
		{"log.level", "debug", "debug", nil},
		{"nope", "1", "", apperrors.ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := Set(&cfg, tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() returned error: %v", err)
			}
			got, err := Get(cfg, tt.key)
			if err != nil {
				t.Fatalf("Get() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Get(%s) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("Keys() returned empty list")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys() not sorted: %s before %s", keys[i-1], keys[i])
		}
	}
	if _, err := Get(DefaultConfig(), keys[0]); err != nil {
		t.Errorf("Get(%s) returned error: %v", keys[0], err)
	}
}
