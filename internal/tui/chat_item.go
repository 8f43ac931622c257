package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/playground/internal/models"
	"github.com/diogo/playground/internal/render"
	"github.com/diogo/playground/internal/state"
)

// minBubbleWidth keeps very narrow terminals readable.
const minBubbleWidth = 10

// ItemOptions controls the layout of a chat item.
type ItemOptions struct {
	// Width is the line width available to the item. Zero means unconstrained.
	Width int
	// Markdown renders agent text through glamour when set.
	Markdown *render.Options
}

// RenderChatItem renders one chat message. Agent messages sit on the left
// behind an "Ag" avatar; everything else is the user's own message, right
// aligned with the display name and its initial. It never fails: empty text
// renders an empty bubble.
func RenderChatItem(item models.ChatItem, names state.OptionsReader, opts ItemOptions) string {
	if item.IsAgent() {
		return renderAgentChatItem(item, opts)
	}
	return renderUserChatItem(item, userNameOf(names), opts)
}

func userNameOf(names state.OptionsReader) string {
	if names == nil {
		return ""
	}
	return names.UserName()
}

func renderAgentChatItem(item models.ChatItem, opts ItemOptions) string {
	avatar := agentAvatarStyle.Render(models.AgentAvatar)
	avatarWidth := lipgloss.Width(avatar) + 1

	text := item.Text
	if opts.Markdown != nil && text != "" {
		mdOpts := *opts.Markdown
		if opts.Width > 0 {
			mdOpts.Width = bubbleContentWidth(opts.Width - avatarWidth)
		}
		text = render.MarkdownOrPlain(text, mdOpts)
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		agentNameStyle.Render(models.AgentLabel),
		bubble(agentTextStyle, text, opts.Width-avatarWidth, opts.Width > 0),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", body)
}

func renderUserChatItem(item models.ChatItem, userName string, opts ItemOptions) string {
	avatar := userAvatarStyle.Render(models.UserInitial(userName))
	avatarWidth := lipgloss.Width(avatar) + 1

	body := lipgloss.JoinVertical(
		lipgloss.Right,
		userNameStyle.Render(models.UserLabel(userName)),
		bubble(userTextStyle, item.Text, opts.Width-avatarWidth, opts.Width > 0),
	)

	row := lipgloss.JoinHorizontal(lipgloss.Top, body, " ", avatar)
	if opts.Width > lipgloss.Width(row) {
		row = lipgloss.PlaceHorizontal(opts.Width, lipgloss.Right, row)
	}
	return row
}

// bubble renders text in a bordered box no wider than available columns.
// Short text keeps its natural width so bubbles hug their content.
func bubble(style lipgloss.Style, text string, available int, constrained bool) string {
	if !constrained {
		return style.Render(text)
	}

	frame := style.GetHorizontalFrameSize()
	maxContent := bubbleContentWidth(available)
	contentWidth := lipgloss.Width(text)
	if contentWidth > maxContent {
		contentWidth = maxContent
	}
	// Width covers content plus padding; the border is added outside it.
	return style.Width(contentWidth + frame - style.GetHorizontalBorderSize()).Render(text)
}

// bubbleContentWidth is the text width left inside a bubble spanning
// at most three quarters of the available columns.
func bubbleContentWidth(available int) int {
	w := available*3/4 - agentTextStyle.GetHorizontalFrameSize()
	if w < minBubbleWidth {
		w = minBubbleWidth
	}
	return w
}
