package models

import (
	"unicode"
	"unicode/utf8"
)

// ChatType is the sender kind of a chat item.
type ChatType string

const (
	ChatTypeAgent ChatType = "agent"
	ChatTypeUser  ChatType = "user"
)

// Fixed sender decorations.
const (
	AgentLabel  = "Agent"
	AgentAvatar = "Ag"

	DefaultUserLabel   = "You"
	DefaultUserInitial = "Y"
)

// ChatItem is one line of conversation as shown in the chat list.
type ChatItem struct {
	UserID  string   `json:"user_id,omitempty"`
	Text    string   `json:"text"`
	Type    ChatType `json:"type"`
	IsFinal bool     `json:"is_final"`
	Time    int64    `json:"time"` // milliseconds
}

// IsAgent reports whether the item came from the agent. Any other
// discriminant, including an empty one, is treated as the user's own message.
func (c ChatItem) IsAgent() bool {
	return c.Type == ChatTypeAgent
}

// UserLabel returns the sender label for the user's own messages.
func UserLabel(userName string) string {
	if userName == "" {
		return DefaultUserLabel
	}
	return userName
}

// UserInitial returns the first character of userName uppercased,
// or DefaultUserInitial when no name is set.
func UserInitial(userName string) string {
	if userName == "" {
		return DefaultUserInitial
	}
	r, _ := utf8.DecodeRuneInString(userName)
	if r == utf8.RuneError {
		return userName[:1]
	}
	return string(unicode.ToUpper(r))
}
