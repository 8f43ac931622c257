package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/playground/internal/history"
	"github.com/diogo/playground/internal/logging"
	"github.com/diogo/playground/internal/models"
	"github.com/diogo/playground/internal/render"
	"github.com/diogo/playground/internal/state"
	"github.com/diogo/playground/internal/transcript"
)

// localUserID keys messages typed into the input box.
const localUserID = "local"

// Message types for the TUI
type (
	itemMsg struct {
		result transcript.Result
	}
	feedClosedMsg struct{}
	optionsMsg    struct {
		opts state.Options
	}
)

// ChatOptions wires the chat view to its collaborators.
type ChatOptions struct {
	// Feed delivers incoming items, typically a transcript replay. May be nil.
	Feed <-chan transcript.Result
	// Log holds the conversation. A new one is created when nil.
	Log *history.Log
	// Markdown renders agent text as markdown when set.
	Markdown *render.Options
	// SaveUserName persists a name changed with /name.
	SaveUserName func(name string) error
	// CopyText writes to the system clipboard.
	CopyText func(text string) error
	// Now stamps typed messages.
	Now func() time.Time
}

// Model represents the TUI state
type Model struct {
	store *state.Store
	log   *history.Log
	opts  ChatOptions

	storeSub <-chan state.Options

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready    bool
	feedDone bool
	err      error
	notice   string

	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(store *state.Store, opts ChatOptions) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	if opts.Log == nil {
		opts.Log = history.NewLog()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		store:    store,
		log:      opts.Log,
		opts:     opts,
		storeSub: store.Subscribe(),
		textarea: ta,
		spinner:  s,
		feedDone: opts.Feed == nil,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.spinner.Tick,
		waitForOptions(m.storeSub),
	}
	if m.opts.Feed != nil {
		cmds = append(cmds, waitForItem(m.opts.Feed))
	}
	return tea.Batch(cmds...)
}

func waitForItem(feed <-chan transcript.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-feed
		if !ok {
			return feedClosedMsg{}
		}
		return itemMsg{result: res}
	}
}

func waitForOptions(sub <-chan state.Options) tea.Cmd {
	return func() tea.Msg {
		return optionsMsg{opts: <-sub}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 2 // Status bar and notice line
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()
			m.err = nil
			m.notice = ""

			if strings.HasPrefix(input, "/") || input == "exit" || input == "quit" {
				return m.runCommand(input)
			}

			m.log.Add(models.ChatItem{
				UserID:  localUserID,
				Type:    models.ChatTypeUser,
				Text:    input,
				IsFinal: true,
				Time:    m.opts.Now().UnixMilli(),
			})
			m.updateViewport()
			m.viewport.GotoBottom()
			return m, nil
		}

	case itemMsg:
		if msg.result.Err != nil {
			m.err = msg.result.Err
			logging.NewLogger("tui").WithError(msg.result.Err).Warn("transcript item rejected")
		} else if m.log.Add(msg.result.Item) {
			m.updateViewport()
			m.viewport.GotoBottom()
		}
		cmds = append(cmds, waitForItem(m.opts.Feed))

	case feedClosedMsg:
		m.feedDone = true

	case optionsMsg:
		m.updateViewport()
		cmds = append(cmds, waitForOptions(m.storeSub))

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// runCommand handles slash commands typed into the input box.
func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	log := logging.NewLogger("tui")

	switch name {
	case "/quit", "/exit", "exit", "quit":
		return m, tea.Quit

	case "/name":
		m.store.SetUserName(arg)
		if m.opts.SaveUserName != nil {
			if err := m.opts.SaveUserName(arg); err != nil {
				m.err = fmt.Errorf("failed to save display name: %w", err)
				log.WithError(err).Error("saving display name")
			}
		}
		if arg == "" {
			m.notice = "Display name cleared"
		} else {
			m.notice = "Display name set to " + arg
		}
		m.updateViewport()

	case "/copy":
		last, ok := m.log.Last(models.ChatTypeAgent)
		switch {
		case !ok:
			m.notice = "No agent message to copy"
		case m.opts.CopyText == nil:
			m.notice = "Clipboard not available"
		default:
			if err := m.opts.CopyText(last.Text); err != nil {
				m.err = fmt.Errorf("failed to copy to clipboard: %w", err)
			} else {
				m.notice = "Copied last agent message"
			}
		}

	case "/clear":
		m.log.Clear()
		m.notice = "Conversation cleared"
		m.updateViewport()

	case "/export":
		if arg == "" {
			m.err = fmt.Errorf("usage: /export <file>")
			break
		}
		md := history.ExportMarkdown(m.log.Items(), m.store.UserName(), history.DefaultExportOptions())
		if err := os.WriteFile(arg, []byte(md), 0o600); err != nil {
			m.err = fmt.Errorf("failed to export conversation: %w", err)
		} else {
			m.notice = "Exported to " + arg
			log.WithField("path", arg).Info("conversation exported")
		}

	default:
		m.err = fmt.Errorf("unknown command %s", name)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	headerContent := lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render("✦ Playground"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(models.UserLabel(m.store.UserName())),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	var messagesContent string
	if m.log.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	label := models.UserLabel(m.store.UserName())
	if m.log.Pending() {
		label = m.spinner.View() + " Agent is speaking"
	}
	inputContent := lipgloss.JoinVertical(
		lipgloss.Left,
		inputLabelStyle.Render(label),
		m.textarea.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	} else if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	hint := "Start a conversation by typing a message below"
	if !m.feedDone {
		hint = "Waiting for the transcript..."
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		welcomeTitleStyle.Width(width).Render("Welcome to the Playground"),
		"",
		welcomeStyle.Width(width).Render(hint),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/name", "Rename"},
		{"/copy", "Copy"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport re-renders every chat item into the viewport.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	itemOpts := ItemOptions{
		Width:    m.viewport.Width - 2,
		Markdown: m.opts.Markdown,
	}

	var content strings.Builder
	for i, item := range m.log.Items() {
		if i > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(RenderChatItem(item, m.store, itemOpts))
	}
	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI
func RunChat(store *state.Store, opts ChatOptions) error {
	p := tea.NewProgram(
		NewChatModel(store, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
