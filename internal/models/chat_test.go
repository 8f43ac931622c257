package models

import "testing"

func TestChatItemIsAgent(t *testing.T) {
	tests := []struct {
		typ  ChatType
		want bool
	}{
		{ChatTypeAgent, true},
		{ChatTypeUser, false},
		{"", false},
		{"system", false},
		{"Agent", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			item := ChatItem{Type: tt.typ}
			if got := item.IsAgent(); got != tt.want {
				t.Errorf("IsAgent() for %q = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestUserLabel(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		want     string
	}{
		{"empty falls back", "", "You"},
		{"name is used", "alice", "alice"},
		{"name kept verbatim", "Bob Smith", "Bob Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserLabel(tt.userName); got != tt.want {
				t.Errorf("UserLabel(%q) = %q, want %q", tt.userName, got, tt.want)
			}
		})
	}
}

func TestUserInitial(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		want     string
	}{
		{"empty falls back", "", "Y"},
		{"lowercase", "alice", "A"},
		{"already upper", "Bob", "B"},
		{"digit", "42", "4"},
		{"multibyte", "élodie", "É"},
		{"invalid utf8", "\xffabc", "\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserInitial(tt.userName); got != tt.want {
				t.Errorf("UserInitial(%q) = %q, want %q", tt.userName, got, tt.want)
			}
		})
	}
}
