// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the codey TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/ui/styles"
)

// MarkdownRenderer renders model replies. render.Renderer implements it.
type MarkdownRenderer interface {
	Markdown(text string) string
}

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders one message with its sender label.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool

	theme    *styles.Theme
	markdown MarkdownRenderer
}

// NewMessageBubble creates a bubble. markdown may be nil, in which case
// replies are shown as plain text.
func NewMessageBubble(msg model.Message, theme *styles.Theme, markdown MarkdownRenderer) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		markdown:      markdown,
	}
}

// SetWidth sets the bubble width
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble
func (b *MessageBubble) View() string {
	label := b.renderLabel()
	body := b.renderBody()
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}

func (b *MessageBubble) renderLabel() string {
	style := b.theme.ModelLabel
	if b.Message.IsUser() {
		style = b.theme.UserLabel
	}
	label := style.Render(b.Message.Role.DisplayName())
	if b.ShowTimestamp && !b.Message.CreatedAt.IsZero() {
		label += " " + b.theme.Timestamp.Render(b.Message.CreatedAt.Format("15:04"))
	}
	return label
}

func (b *MessageBubble) renderBody() string {
	// Border and padding take two columns.
	inner := b.Width - 2
	if inner < 10 {
		inner = 10
	}

	switch {
	case b.Message.IsError:
		return b.theme.ErrorBubble.Width(inner).Render(b.Message.Text)
	case b.Message.IsUser():
		return b.theme.UserBubble.Width(inner).Render(b.Message.Text)
	default:
		text := b.Message.Text
		if b.markdown != nil {
			text = b.markdown.Markdown(text)
		}
		return b.theme.ModelBubble.Render(text)
	}
}

// RenderTranscript renders every message of a conversation separated by a
// blank line.
func RenderTranscript(messages []model.Message, width int, theme *styles.Theme, markdown MarkdownRenderer) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		b := NewMessageBubble(msg, theme, markdown)
		b.SetWidth(width)
		parts = append(parts, b.View())
	}
	return strings.Join(parts, "\n\n")
}

// TypingIndicator is shown under the transcript while a reply is pending.
func TypingIndicator(theme *styles.Theme, spinnerFrame, elapsed string) string {
	text := "Model is typing..."
	if elapsed != "" {
		text += " " + elapsed
	}
	return theme.Spinner.Render(spinnerFrame) + " " + theme.ThinkingText.Render(text)
}
