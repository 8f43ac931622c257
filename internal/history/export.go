package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/diogo/playground/internal/models"
)

// ExportOptions configures how a chat log is exported
type ExportOptions struct {
	Title          string
	IncludeTimes   bool
	IncludePending bool // Keep non-final items
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Title:          "Conversation",
		IncludeTimes:   true,
		IncludePending: false,
	}
}

// ExportMarkdown renders items as Markdown using the same sender labels
// as the chat view.
func ExportMarkdown(items []models.ChatItem, userName string, opts ExportOptions) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(opts.Title)
	sb.WriteString("\n\n")

	count := 0
	for _, item := range items {
		if !item.IsFinal && !opts.IncludePending {
			continue
		}
		count++
	}
	sb.WriteString(fmt.Sprintf("**Messages:** %d\n\n---\n\n", count))

	first := true
	for _, item := range items {
		if !item.IsFinal && !opts.IncludePending {
			continue
		}
		if !first {
			sb.WriteString("\n---\n\n")
		}
		first = false

		sb.WriteString("## ")
		if item.IsAgent() {
			sb.WriteString(models.AgentLabel)
		} else {
			sb.WriteString(models.UserLabel(userName))
		}
		if opts.IncludeTimes && item.Time > 0 {
			sb.WriteString(" (")
			sb.WriteString(time.UnixMilli(item.Time).UTC().Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")
		sb.WriteString(item.Text)
		sb.WriteString("\n")
	}

	return sb.String()
}
