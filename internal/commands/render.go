package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/playground/internal/config"
	"github.com/diogo/playground/internal/history"
	"github.com/diogo/playground/internal/logging"
	"github.com/diogo/playground/internal/models"
	"github.com/diogo/playground/internal/render"
	"github.com/diogo/playground/internal/state"
	"github.com/diogo/playground/internal/transcript"
	"github.com/diogo/playground/internal/tui"
)

type renderFlags struct {
	width    int
	name     string
	markdown bool
	strict   bool
	raw      bool
	copy     bool
}

// NewRenderCmd creates the command that prints a transcript as chat bubbles
func NewRenderCmd(deps *Dependencies) *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [transcript]",
		Short: "Print a transcript as chat bubbles",
		Long: `Print every record of a transcript as a chat bubble.

Streaming records are merged the way the chat view shows them: partial
transcriptions are replaced by later ones and stale records are dropped.
Use --raw to print every record as it appears in the file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, deps, args, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "Output width (default: terminal width)")
	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "Display name (default: configured user_name)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Render agent messages as markdown")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail on the first malformed record")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Do not merge partial records")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Also copy the conversation as Markdown to the clipboard")

	return cmd
}

func runRender(cmd *cobra.Command, deps *Dependencies, args []string, flags renderFlags) error {
	log := logging.NewLogger("render")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	userName := cfg.UserName
	if cmd.Flags().Changed("name") {
		userName = flags.name
	}

	items, err := readTranscript(deps, args, cfg, flags.strict, flags.raw)
	if err != nil {
		return err
	}

	width := outputWidth(deps, flags.width)
	itemOpts := tui.ItemOptions{Width: width}
	if flags.markdown || cfg.Markdown.Enabled {
		md := render.OptionsFromConfig(cfg, width)
		itemOpts.Markdown = &md
	}

	names := state.Static(userName)
	for i, item := range items {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintln(deps.Stdout, RenderLine(item, names, itemOpts))
	}
	log.WithField("items", len(items)).Debug("rendered transcript")

	if flags.copy || cfg.CopyToClipboard {
		md := history.ExportMarkdown(items, userName, history.DefaultExportOptions())
		if deps.CopyText == nil {
			return fmt.Errorf("clipboard not available")
		}
		if err := deps.CopyText(md); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}
	return nil
}

// RenderLine renders one chat item without trailing whitespace on its lines.
func RenderLine(item models.ChatItem, names state.OptionsReader, opts tui.ItemOptions) string {
	out := tui.RenderChatItem(item, names, opts)
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// readTranscript decodes the input and, unless raw, merges it through a chat log.
func readTranscript(deps *Dependencies, args []string, cfg config.Config, strict, raw bool) ([]models.ChatItem, error) {
	in, err := openInput(deps, args)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	items, err := transcript.Read(in, transcript.Options{
		AgentStreamID: cfg.AgentStreamID,
		Strict:        strict,
	})
	if err != nil {
		return nil, err
	}
	if raw {
		return items, nil
	}

	log := history.NewLog()
	for _, item := range items {
		log.Add(item)
	}
	return log.Items(), nil
}
