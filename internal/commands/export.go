package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/playground/internal/config"
	"github.com/diogo/playground/internal/history"
)

// NewExportCmd creates the command that writes a transcript as Markdown
func NewExportCmd(deps *Dependencies) *cobra.Command {
	var (
		output  string
		name    string
		title   string
		pending bool
		noTimes bool
	)

	cmd := &cobra.Command{
		Use:   "export [transcript]",
		Short: "Export a transcript to Markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			userName := cfg.UserName
			if cmd.Flags().Changed("name") {
				userName = name
			}

			items, err := readTranscript(deps, args, cfg, false, false)
			if err != nil {
				return err
			}

			opts := history.DefaultExportOptions()
			opts.IncludePending = pending
			opts.IncludeTimes = !noTimes
			if title != "" {
				opts.Title = title
			}
			md := history.ExportMarkdown(items, userName, opts)

			if output == "" || output == "-" {
				_, err := fmt.Fprint(deps.Stdout, md)
				return err
			}
			if err := os.WriteFile(output, []byte(md), 0o600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(deps.Stderr, "Exported %d messages to %s\n", len(items), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name (default: configured user_name)")
	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().BoolVar(&pending, "include-pending", false, "Keep records that were never finalized")
	cmd.Flags().BoolVar(&noTimes, "no-times", false, "Omit message times")

	return cmd
}
