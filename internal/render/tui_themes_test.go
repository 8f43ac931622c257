package render

import (
	"testing"

	"github.com/diogo/playground/internal/config"
)

func TestTUIThemes_HaveAllColors(t *testing.T) {
	for _, theme := range AvailableTUIThemes() {
		colors := map[string]string{
			"border":      string(theme.Border),
			"agent":       string(theme.Agent),
			"user":        string(theme.User),
			"avatar text": string(theme.AvatarText),
			"accent":      string(theme.Accent),
			"error":       string(theme.Error),
			"text":        string(theme.Text),
			"text dim":    string(theme.TextDim),
			"text mute":   string(theme.TextMute),
		}
		for name, c := range colors {
			if c == "" {
				t.Errorf("theme %s has empty %s color", theme.Name, name)
			}
		}
		if theme.Agent == theme.User {
			t.Errorf("theme %s should distinguish agent and user", theme.Name)
		}
	}
}

func TestSetTUITheme(t *testing.T) {
	defer SetTUITheme("tokyonight")

	if !SetTUITheme("nord") {
		t.Fatal("SetTUITheme(nord) = false")
	}
	if GetTUITheme().Name != "nord" {
		t.Errorf("GetTUITheme() = %s, want nord", GetTUITheme().Name)
	}
	if SetTUITheme("solarized") {
		t.Error("SetTUITheme should reject unknown names")
	}
	if GetTUITheme().Name != "nord" {
		t.Error("unknown theme should leave current theme unchanged")
	}
}

func TestTUIThemeNamesMatchConfig(t *testing.T) {
	names := TUIThemeNames()
	allowed := config.AvailableTUIThemes()
	if len(names) != len(allowed) {
		t.Fatalf("render has %d themes, config allows %d", len(names), len(allowed))
	}
	for i := range names {
		if names[i] != allowed[i] {
			t.Errorf("theme %d: render %s, config %s", i, names[i], allowed[i])
		}
	}
}
