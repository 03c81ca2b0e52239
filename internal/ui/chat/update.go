// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/coordinator"
	"github.com/brettapps789/codey/internal/logging"
	"github.com/brettapps789/codey/internal/notify"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if !m.coord.Loading() {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewport(false)
		return m, cmd

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case ExportedMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Msg("Export failed")
			m.setStatus("Export failed: "+msg.Err.Error(), true)
		} else {
			m.setStatus("Exported to "+msg.Path, false)
		}
		return m, nil

	case notifiedMsg:
		return m, nil
	}

	// Cursor blink and other internal textarea messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	chatWidth := m.chatWidth()

	vpHeight := m.height - headerHeight - statusBarHeight - inputBoxHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = chatWidth
	m.viewport.Height = vpHeight

	// Input box border and padding take four columns.
	m.input.SetWidth(chatWidth - 4)

	if m.renderer != nil {
		// Bubble border and padding take two more.
		if err := m.renderer.SetWidth(chatWidth - 4); err != nil {
			m.log.Warn().Err(err).Msg("Failed to resize markdown renderer")
		}
	}

	m.refreshViewport(true)
	return m, nil
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Nothing but quit is reachable without a credential.
	if m.configMissing {
		return m, nil
	}

	m.clearStatus()

	switch {
	case key.Matches(msg, m.keys.NewChat):
		return m.newChat()

	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus()

	case key.Matches(msg, m.keys.Copy):
		return m.copyLastReply()

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}

	// Newline bindings are matched inside the textarea, so check them
	// before treating enter as send.
	if key.Matches(msg, m.keys.Send) && !key.Matches(msg, m.keys.Newline) {
		return m.send()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	convs := m.coord.Conversations()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(convs)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Send):
		if m.cursor < len(convs) {
			m.coord.Select(convs[m.cursor].ID)
			m.focus = focusInput
			m.input.Focus()
			m.refreshViewport(true)
		}
	}
	return m, nil
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusSidebar {
		m.focus = focusInput
		return m, m.input.Focus()
	}

	m.focus = focusSidebar
	m.input.Blur()
	// Start on the active conversation.
	for i, c := range m.coord.Conversations() {
		if c.ID == m.coord.ActiveID() {
			m.cursor = i
			break
		}
	}
	return m, nil
}

// =============================================================================
// INTENTS
// =============================================================================

func (m Model) newChat() (tea.Model, tea.Cmd) {
	conv, err := m.coord.NewChat(m.ctx)
	if err != nil {
		// The conversation exists; its first send will fail with the apology.
		m.setStatus("Could not open a model session", true)
	}
	m.cursor = 0
	m.focus = focusInput
	m.input.Reset()
	m.refreshViewport(true)
	m.log.Debug().Str("conversation_id", conv.ID).Msg("New chat")
	return m, m.input.Focus()
}

func (m Model) send() (tea.Model, tea.Cmd) {
	// Whitespace-only input is rejected by Begin; anything else is sent as
	// typed.
	req, err := m.coord.Begin(m.input.Value())
	if err != nil {
		m.setStatus(statusForSendError(err), true)
		return m, nil
	}

	m.input.Reset()
	m.refreshViewport(true)

	cmds := []tea.Cmd{completeCmd(m.ctx, m.coord, req)}
	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// completeCmd runs the round trip off the event loop.
func completeCmd(ctx context.Context, coord *coordinator.Coordinator, req *coordinator.Request) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Reply: coord.Complete(ctx, req)}
	}
}

func statusForSendError(err error) string {
	switch {
	case errors.Is(err, coordinator.ErrEmptyMessage):
		return "Type a message first"
	case errors.Is(err, coordinator.ErrNoActiveConversation):
		return "No conversation selected. Press ctrl+n to start one"
	case errors.Is(err, coordinator.ErrConversationBusy):
		return "Waiting for the reply to the previous message"
	default:
		return err.Error()
	}
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	reply := msg.Reply

	if reply.ConversationID == m.coord.ActiveID() {
		m.refreshViewport(true)
		return m, nil
	}

	// Landed in a conversation that is not on screen.
	if reply.Failed() || !m.notifier.Enabled() {
		return m, nil
	}
	conv, err := m.coord.Conversation(reply.ConversationID)
	if err != nil {
		return m, nil
	}
	return m, notifyCmd(m.notifier, conv.Title, reply.Message.Text)
}

func notifyCmd(n *notify.Notifier, title, text string) tea.Cmd {
	return func() tea.Msg {
		_ = n.ReplyReady(title, text)
		return notifiedMsg{}
	}
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	conv, ok := m.activeConversation()
	if !ok {
		m.setStatus("No conversation selected", true)
		return m, nil
	}
	reply, ok := conv.LastModelReply()
	if !ok {
		m.setStatus("Nothing to copy yet", true)
		return m, nil
	}
	if err := m.copyText(reply.Text); err != nil {
		m.log.Warn().Err(err).Msg("Clipboard write failed")
		m.setStatus("Could not copy to clipboard", true)
		return m, nil
	}
	m.setStatus("Copied reply to clipboard", false)
	return m, nil
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Msg("Config reload failed")
		m.setStatus("Config reload failed: "+msg.Err.Error(), true)
		return m, nil
	}

	cfg := msg.Config
	if m.notifier != nil {
		m.notifier.SetEnabled(cfg.UI.Notifications)
	}
	if cfg.UI.ExportDir != "" {
		m.exportDir = cfg.UI.ExportDir
	}
	if lvl, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// The client was built for the startup provider and cannot be swapped
	// under live sessions.
	if !strings.EqualFold(cfg.Provider, m.provider) {
		m.log.Warn().
			Str("provider", m.provider).
			Str("configured", cfg.Provider).
			Msg("Provider change needs a restart")
		m.setStatus("Configuration reloaded. Restart codey to switch provider to "+cfg.Provider, true)
		return m, nil
	}

	m.coord.Sessions().SetModel(cfg.Model)
	m.log.Info().Str("model", cfg.Model).Msg("Configuration reloaded")
	m.setStatus("Configuration reloaded, new chats use "+cfg.Model, false)
	return m, nil
}
