package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/playground/internal/state"
	"github.com/diogo/playground/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(store *state.Store, opts tui.ChatOptions) error
	RunConfig() error
}

// Dependencies holds the external dependencies for the commands.
// Tests replace the terminal, clipboard and TUI.
type Dependencies struct {
	TUI TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// CopyText writes to the system clipboard.
	CopyText func(text string) error

	// TerminalWidth reports the output width, or 0 when unknown.
	TerminalWidth func() int
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(store *state.Store, opts tui.ChatOptions) error {
	return tui.RunChat(store, opts)
}

func (d *DefaultTUI) RunConfig() error {
	return tui.RunConfig()
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:           &DefaultTUI{},
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		CopyText:      clipboard.WriteAll,
		TerminalWidth: getTerminalWidth,
	}
}

// getTerminalWidth returns the terminal width or 0 when stdout is not a terminal
func getTerminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
