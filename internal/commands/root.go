// Package commands provides CLI commands for the playground.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/playground/internal/config"
	"github.com/diogo/playground/internal/logging"
	"github.com/diogo/playground/internal/render"
	"github.com/diogo/playground/internal/tui"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd builds the command tree around deps.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "playground",
		Short: "Terminal viewer for voice agent conversations",
		Long: `playground shows a conversation between a voice agent and its user
as chat bubbles in the terminal. Transcripts are newline-delimited JSON
records, either direct chat records or RTC data-stream text messages.

Examples:
  playground chat                             Start an interactive chat view
  playground chat -t session.jsonl            Replay a transcript in the chat view
  playground render session.jsonl             Print a transcript as chat bubbles
  cat session.jsonl | playground render       Read the transcript from stdin
  playground export session.jsonl -o chat.md  Export a transcript to Markdown
  playground config set user_name alice       Set your display name`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			render.SetTUITheme(cfg.TUITheme)
			tui.UpdateTheme()
			if err := logging.Setup(cfg); err != nil {
				fmt.Fprintf(deps.Stderr, "Warning: logging disabled: %v\n", err)
			}
			logging.NewLogger("cli").WithField("command", cmd.CommandPath()).Debug("starting")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "playground %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.SetIn(deps.Stdin)
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(NewChatCmd(deps))
	rootCmd.AddCommand(NewRenderCmd(deps))
	rootCmd.AddCommand(NewExportCmd(deps))
	rootCmd.AddCommand(NewConfigCmd(deps))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	if err := NewRootCmd(deps).Execute(); err != nil {
		fmt.Fprintln(deps.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}

// openInput opens the transcript named by args, or stdin for "-" or no argument.
func openInput(deps *Dependencies, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(deps.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	return f, nil
}

// outputWidth picks the flag value, then the terminal width, then the default.
func outputWidth(deps *Dependencies, flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if deps.TerminalWidth != nil {
		if w := deps.TerminalWidth(); w > 0 {
			return w
		}
	}
	return defaultWidth
}
