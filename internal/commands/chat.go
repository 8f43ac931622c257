package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/playground/internal/config"
	"github.com/diogo/playground/internal/logging"
	"github.com/diogo/playground/internal/render"
	"github.com/diogo/playground/internal/state"
	"github.com/diogo/playground/internal/transcript"
	"github.com/diogo/playground/internal/tui"
)

type chatFlags struct {
	transcript  string
	replayDelay time.Duration
	name        string
	markdown    bool
	strict      bool
}

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	var flags chatFlags

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat view",
		Long: `Start an interactive chat view.

Messages typed into the input box appear as your own chat bubbles. With
--transcript, records from the file are replayed into the view as they would
arrive from the agent, with --replay-delay between them.

Commands inside the chat:
  /name <name>    Set your display name (empty clears it)
  /copy           Copy the last agent message to the clipboard
  /clear          Clear the conversation
  /export <file>  Save the conversation as Markdown
  /quit           Leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, deps, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.transcript, "transcript", "t", "", "Transcript file to replay")
	cmd.Flags().DurationVar(&flags.replayDelay, "replay-delay", 500*time.Millisecond, "Pause between replayed records")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "Display name for this session (not saved)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Render agent messages as markdown")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Stop the replay at the first malformed record")

	return cmd
}

func runChat(cmd *cobra.Command, deps *Dependencies, flags chatFlags) error {
	log := logging.NewLogger("chat")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("name") {
		cfg.UserName = flags.name
	}
	store := state.NewStoreFromConfig(cfg)

	opts := tui.ChatOptions{
		CopyText: deps.CopyText,
		SaveUserName: func(name string) error {
			saved, err := config.LoadConfig()
			if err != nil {
				return err
			}
			saved.UserName = name
			return config.SaveConfig(saved)
		},
	}

	if flags.markdown || cfg.Markdown.Enabled {
		md := render.OptionsFromConfig(cfg, defaultWidth)
		opts.Markdown = &md
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if flags.transcript == "-" {
		return fmt.Errorf("the chat view reads the keyboard; pass --transcript a file")
	}
	if flags.transcript != "" {
		in, err := openInput(deps, []string{flags.transcript})
		if err != nil {
			return err
		}
		defer in.Close()

		opts.Feed = transcript.Stream(ctx, in, transcript.Options{
			AgentStreamID: cfg.AgentStreamID,
			Strict:        flags.strict,
			Delay:         flags.replayDelay,
		})
		log.WithField("transcript", flags.transcript).Info("replaying transcript")
	}

	if err := deps.TUI.RunChat(store, opts); err != nil {
		return fmt.Errorf("chat view failed: %w", err)
	}
	return nil
}
