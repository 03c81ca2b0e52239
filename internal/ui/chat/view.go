// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/ui/components"
	"github.com/brettapps789/codey/internal/util"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.configMissing {
		return components.ConfigMissing(m.theme, m.credentialVar, m.width, m.height)
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderMain(),
		m.renderInput(),
	)

	body := right
	if m.showSidebar() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

// =============================================================================
// REGIONS
// =============================================================================

func (m Model) renderHeader() string {
	width := m.chatWidth()
	title := m.theme.HeaderTitle.Render("Codey")

	sub := m.coord.Sessions().Model()
	if conv, ok := m.activeConversation(); ok {
		sub = conv.Title + " | " + sub
	}
	// Padding takes two columns, the title and a separator the rest.
	avail := width - 2 - lipgloss.Width(title) - 1
	sub = util.TruncateWidth(sub, avail)

	return m.theme.Header.Width(width).Render(title + " " + m.theme.HeaderSubtitle.Render(sub))
}

func (m Model) renderMain() string {
	if _, ok := m.activeConversation(); !ok {
		return components.EmptyState(m.theme, model.ProviderDisplayName(m.provider), m.viewport.Width, m.viewport.Height)
	}
	return m.viewport.View()
}

func (m Model) renderInput() string {
	box := m.theme.InputContainer
	if m.focus == focusInput {
		box = m.theme.InputContainerFocused
	}
	return box.Width(m.chatWidth() - 2).Render(m.input.View())
}

func (m Model) renderSidebar() string {
	sb := components.NewSidebar(m.theme)
	sb.Width = m.sidebarWidth
	sb.Height = m.height - statusBarHeight
	sb.Focused = m.focus == focusSidebar
	sb.Cursor = m.cursor

	activeID := m.coord.ActiveID()
	for _, c := range m.coord.Conversations() {
		sb.Items = append(sb.Items, components.SidebarItem{
			Conversation: c,
			Active:       c.ID == activeID,
			Pending:      m.coord.IsPending(c.ID),
		})
	}
	sb.ClampCursor()
	return sb.View()
}

func (m Model) renderStatusBar() string {
	bar := components.NewStatusBar(m.theme)
	bar.Width = m.width
	bar.Model = m.coord.Sessions().Provider() + " / " + m.coord.Sessions().Model()
	bar.Status = m.status
	bar.IsError = m.statusErr
	bar.Keys = m.keys.ShortHelp()
	return bar.View()
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport re-renders the active transcript. bottom scrolls to the
// newest message.
func (m *Model) refreshViewport(bottom bool) {
	if m.coord == nil {
		return
	}
	conv, ok := m.coord.Active()
	if !ok {
		m.viewport.SetContent("")
		return
	}

	var renderer components.MarkdownRenderer
	if m.renderer != nil {
		renderer = m.renderer
	}

	content := components.RenderTranscript(conv.Messages, m.viewport.Width, m.theme, renderer)
	if indicator := m.typingIndicator(conv); indicator != "" {
		if content != "" {
			content += "\n\n"
		}
		content += indicator
	}

	m.viewport.SetContent(content)
	if bottom {
		m.viewport.GotoBottom()
	}
}

// typingIndicator is shown while the conversation waits for a reply to its
// last user message.
func (m Model) typingIndicator(conv model.Conversation) string {
	if !m.coord.IsPending(conv.ID) {
		return ""
	}
	last, ok := conv.LastMessage()
	if !ok || !last.IsUser() {
		return ""
	}

	elapsed := ""
	if since, ok := m.coord.PendingSince(conv.ID); ok {
		if d := time.Since(since); d >= time.Second {
			elapsed = "(" + strings.TrimSuffix(humanize.RelTime(since, time.Now(), "", ""), " ") + ")"
		}
	}
	return components.TypingIndicator(m.theme, m.spinner.View(), elapsed)
}
