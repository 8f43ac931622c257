package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/playground/internal/config"
	"github.com/diogo/playground/internal/models"
	"github.com/diogo/playground/internal/render"
	"github.com/diogo/playground/internal/state"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewNameEdit
	viewStyleSelect    // Markdown style
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for main view
const (
	menuUserName = iota
	menuMarkdown
	menuCopyToClipboard
	menuStyle
	menuTUITheme
	menuExit
	menuItemCount
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel is the interactive settings editor.
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error

	// Navigation
	view           configView
	cursor         int
	styleCursor    int
	tuiThemeCursor int
	nameInput      textinput.Model

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a settings editor for cfg. save persists every change.
func NewConfigModel(cfg config.Config, save func(config.Config) error) ConfigModel {
	configPath, _ := config.GetConfigPath()

	ti := textinput.New()
	ti.Placeholder = models.DefaultUserLabel
	ti.CharLimit = 64
	ti.Prompt = "› "

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            save,
		view:            viewMain,
		styleCursor:     indexOf(styleNames(), cfg.Markdown.Style),
		tuiThemeCursor:  indexOf(render.TUIThemeNames(), cfg.TUITheme),
		nameInput:       ti,
		feedbackTimeout: 2 * time.Second,
	}
}

func styleNames() []string {
	var names []string
	for _, s := range render.AvailableStyles() {
		names = append(names, s.Name)
	}
	return names
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return 0
}

// Config returns the settings as currently edited.
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case feedbackClearMsg:
		m.feedback = ""
		return m, nil

	case tea.KeyMsg:
		if m.view == viewNameEdit {
			return m.updateNameEdit(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func wrap(i, n int) int {
	return (i%n + n) % n
}

func (m *ConfigModel) moveCursor(delta int) {
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor+delta, menuItemCount)
	case viewStyleSelect:
		m.styleCursor = wrap(m.styleCursor+delta, len(styleNames()))
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor+delta, len(render.TUIThemeNames()))
	}
}

func (m ConfigModel) updateNameEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.view = viewMain
		return m, nil
	case tea.KeyEnter:
		m.nameInput.Blur()
		m.view = viewMain
		m.config.UserName = strings.TrimSpace(m.nameInput.Value())
		label := models.UserLabel(m.config.UserName)
		return m.persist(fmt.Sprintf("Display name set to %s", label))
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// persist saves the config and reports the outcome as feedback.
func (m ConfigModel) persist(success string) (tea.Model, tea.Cmd) {
	if m.save != nil {
		if err := m.save(m.config); err != nil {
			m.feedback = fmt.Sprintf("Error: %v", err)
			return m, clearFeedback(m.feedbackTimeout)
		}
	}
	m.feedback = success
	return m, clearFeedback(m.feedbackTimeout)
}

func enabledText(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuUserName:
			m.view = viewNameEdit
			m.nameInput.SetValue(m.config.UserName)
			m.nameInput.CursorEnd()
			cmd := m.nameInput.Focus()
			return m, cmd

		case menuMarkdown:
			m.config.Markdown.Enabled = !m.config.Markdown.Enabled
			return m.persist("Markdown rendering " + enabledText(m.config.Markdown.Enabled))

		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m.persist("Copy to clipboard " + enabledText(m.config.CopyToClipboard))

		case menuStyle:
			m.view = viewStyleSelect

		case menuTUITheme:
			m.view = viewTUIThemeSelect

		case menuExit:
			return m, tea.Quit
		}

	case viewStyleSelect:
		m.config.Markdown.Style = styleNames()[m.styleCursor]
		m.view = viewMain
		return m.persist("Markdown style set to " + m.config.Markdown.Style)

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected

		// Apply the new TUI theme immediately
		render.SetTUITheme(selected)
		UpdateTheme()

		m.view = viewMain
		return m.persist("TUI theme set to " + selected)
	}

	return m, nil
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	header := headerStyle.Width(contentWidth).Render(titleStyle.Render("✦ Settings"))
	sections = append(sections, header)

	paths := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Paths"),
		fmt.Sprintf("   Config:  %s", configValueStyle.Render(m.configPath)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(paths))

	var content string
	switch m.view {
	case viewMain:
		content = m.renderMainMenu()
	case viewNameEdit:
		content = lipgloss.JoinVertical(lipgloss.Left,
			configSectionTitleStyle.Render("Display Name"),
			"",
			m.nameInput.View(),
			"",
			hintStyle.Render("Leave empty to show \""+models.DefaultUserLabel+"\""),
		)
	case viewStyleSelect:
		content = m.renderSelect("Select Markdown Style", render.AvailableStyles(), m.styleCursor, m.config.Markdown.Style)
	case viewTUIThemeSelect:
		var themes []render.StyleInfo
		for _, t := range render.AvailableTUIThemes() {
			themes = append(themes, render.StyleInfo{Name: t.Name, Description: t.Description})
		}
		content = m.renderSelect("Select TUI Theme", themes, m.tuiThemeCursor, m.config.TUITheme)
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(content))

	// Preview of the user's own bubble under the current display name
	preview := RenderChatItem(
		models.ChatItem{Type: models.ChatTypeUser, Text: "Hello there"},
		state.Static(m.previewName()),
		ItemOptions{Width: contentWidth},
	)
	sections = append(sections, preview)

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConfigModel) previewName() string {
	if m.view == viewNameEdit {
		return strings.TrimSpace(m.nameInput.Value())
	}
	return m.config.UserName
}

func menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := configMenuItemStyle
	if selected {
		cursor = configCursorStyle.Render("▸ ")
		style = configMenuSelectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	return fmt.Sprintf("%s%s%s", cursor, style.Width(22).Render(label), value)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	items := []string{
		configSectionTitleStyle.Render("⚙ Settings"),
		"",
		menuLine(m.cursor == menuUserName, "Display Name", configValueStyle.Render(models.UserLabel(m.config.UserName))),
		menuLine(m.cursor == menuMarkdown, "Markdown", m.renderBoolValue(m.config.Markdown.Enabled)),
		menuLine(m.cursor == menuCopyToClipboard, "Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)),
		menuLine(m.cursor == menuStyle, "Markdown Style", configValueStyle.Render(m.config.Markdown.Style)),
		menuLine(m.cursor == menuTUITheme, "TUI Theme", configValueStyle.Render(m.config.TUITheme)),
		"",
		menuLine(m.cursor == menuExit, "Exit", ""),
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderSelect renders a selection sub-menu
func (m ConfigModel) renderSelect(title string, options []render.StyleInfo, cursor int, current string) string {
	items := []string{configSectionTitleStyle.Render(title), ""}
	for i, opt := range options {
		mark := ""
		if opt.Name == current {
			mark = configStatusOkStyle.Render(" (current)")
		}
		items = append(items, menuLine(i == cursor, fmt.Sprintf("%s - %s", opt.Name, opt.Description), "")+mark)
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	shortcuts := [][2]string{{"↑↓", "Navigate"}, {"Enter", "Select"}, {"Esc", "Exit"}}
	switch m.view {
	case viewNameEdit:
		shortcuts = [][2]string{{"Enter", "Save"}, {"Esc", "Cancel"}}
	case viewStyleSelect, viewTUIThemeSelect:
		shortcuts[2][1] = "Back"
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s[0]),
			statusDescStyle.Render(" "+s[1]),
		))
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunConfig starts the settings editor on the saved configuration.
func RunConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewConfigModel(cfg, config.SaveConfig),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
