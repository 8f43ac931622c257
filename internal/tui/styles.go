// Package tui provides the terminal user interface for the playground.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/diogo/playground/internal/errors"
	"github.com/diogo/playground/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder     lipgloss.Color
	colorAgent      lipgloss.Color
	colorUser       lipgloss.Color
	colorAvatarText lipgloss.Color
	colorAccent     lipgloss.Color
	colorError      lipgloss.Color
	colorText       lipgloss.Color
	colorTextDim    lipgloss.Color
	colorTextMute   lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Chat item: agent side
	agentAvatarStyle lipgloss.Style
	agentNameStyle   lipgloss.Style
	agentTextStyle   lipgloss.Style

	// Chat item: user side
	userAvatarStyle lipgloss.Style
	userNameStyle   lipgloss.Style
	userTextStyle   lipgloss.Style

	// Chrome
	headerStyle       lipgloss.Style
	titleStyle        lipgloss.Style
	subtitleStyle     lipgloss.Style
	hintStyle         lipgloss.Style
	messagesAreaStyle lipgloss.Style
	inputPanelStyle   lipgloss.Style
	inputLabelStyle   lipgloss.Style
	loadingStyle      lipgloss.Style
	statusBarStyle    lipgloss.Style
	statusKeyStyle    lipgloss.Style
	statusDescStyle   lipgloss.Style
	noticeStyle       lipgloss.Style
	errorStyle        lipgloss.Style

	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style

	// Settings editor
	configPanelStyle        lipgloss.Style
	configSectionTitleStyle lipgloss.Style
	configMenuItemStyle     lipgloss.Style
	configMenuSelectedStyle lipgloss.Style
	configCursorStyle       lipgloss.Style
	configValueStyle        lipgloss.Style
	configEnabledStyle      lipgloss.Style
	configDisabledStyle     lipgloss.Style
	configStatusOkStyle     lipgloss.Style
	configFeedbackStyle     lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorAgent = theme.Agent
	colorUser = theme.User
	colorAvatarText = theme.AvatarText
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

func rebuildStyles() {
	agentAvatarStyle = lipgloss.NewStyle().
		Background(colorAgent).
		Foreground(colorAvatarText).
		Bold(true).
		Padding(0, 1)

	agentNameStyle = lipgloss.NewStyle().
		Foreground(colorAgent).
		Bold(true)

	agentTextStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorAgent).
		Foreground(colorText).
		Padding(0, 1)

	userAvatarStyle = lipgloss.NewStyle().
		Background(colorUser).
		Foreground(colorAvatarText).
		Bold(true).
		Padding(0, 1)

	userNameStyle = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true)

	userTextStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorUser).
		Foreground(colorText).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2).
		MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorAgent).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		MarginTop(1)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorAgent).
		Bold(true).
		Align(lipgloss.Center)

	configPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2).
		MarginBottom(1)

	configSectionTitleStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	configMenuItemStyle = lipgloss.NewStyle().
		Foreground(colorText)

	configMenuSelectedStyle = lipgloss.NewStyle().
		Foreground(colorAgent).
		Bold(true)

	configCursorStyle = lipgloss.NewStyle().
		Foreground(colorAgent).
		Bold(true)

	configValueStyle = lipgloss.NewStyle().
		Foreground(colorUser)

	configEnabledStyle = lipgloss.NewStyle().
		Foreground(colorAgent).
		Bold(true)

	configDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	configStatusOkStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	configFeedbackStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		MarginTop(1)
}

// FormatError returns a styled error message with hints for known error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim).PaddingLeft(2)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	switch {
	case apperrors.IsParseError(err):
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render(fmt.Sprintf("Transcript line: %d", apperrors.GetLine(err))))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Hint: each line must be a JSON object; drop --strict to skip bad lines"))
	case apperrors.IsConfigError(err):
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Hint: run 'playground config list' to see valid keys"))
	}

	return sb.String()
}
