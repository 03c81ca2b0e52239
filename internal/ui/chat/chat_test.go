// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettapps789/codey/internal/config"
	"github.com/brettapps789/codey/internal/coordinator"
	"github.com/brettapps789/codey/internal/llm/llmtest"
	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/notify"
	"github.com/brettapps789/codey/internal/session"
	"github.com/brettapps789/codey/internal/storage"
	"github.com/brettapps789/codey/internal/ui/styles"
)

// =============================================================================
// HELPERS
// =============================================================================

type notifications struct {
	titles []string
}

func (n *notifications) send(title, _ string, _ any) error {
	n.titles = append(n.titles, title)
	return nil
}

type harness struct {
	coord    *coordinator.Coordinator
	notified *notifications
	copied   []string
}

func newTestModel(t *testing.T, client *llmtest.Client) (Model, *harness) {
	t.Helper()

	h := &harness{notified: &notifications{}}
	store := storage.NewConversationStore()
	h.coord = coordinator.New(store, session.NewRegistry(client, "gemini-2.5-pro"))

	m := New(Options{
		Coordinator: h.coord,
		Theme:       styles.NewTheme("dark"),
		Notifier:    notify.NewWithSender(true, zerolog.Nop(), h.notified.send),
		Logger:      zerolog.Nop(),
		Provider:    model.ProviderGemini,
		ExportDir:   t.TempDir(),
	})
	m.copyText = func(s string) error {
		h.copied = append(h.copied, s)
		return nil
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, h
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return update(m, tea.KeyMsg{Type: k})
}

func typeAndSend(m Model, text string) (Model, tea.Cmd) {
	m.input.SetValue(text)
	return press(m, tea.KeyEnter)
}

// runCmd executes cmd, expanding batches, and returns every message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findReply(t *testing.T, msgs []tea.Msg) ReplyMsg {
	t.Helper()
	for _, msg := range msgs {
		if r, ok := msg.(ReplyMsg); ok {
			return r
		}
	}
	t.Fatal("no ReplyMsg produced")
	return ReplyMsg{}
}

func activeTexts(t *testing.T, coord *coordinator.Coordinator) []string {
	t.Helper()
	conv, ok := coord.Active()
	require.True(t, ok, "no active conversation")
	out := make([]string, len(conv.Messages))
	for i, msg := range conv.Messages {
		out[i] = string(msg.Role) + ":" + msg.Text
	}
	return out
}

// =============================================================================
// SENDING
// =============================================================================

func TestSend_RoundTrip(t *testing.T) {
	m, h := newTestModel(t, llmtest.Static("Hi there!"))

	m, _ = press(m, tea.KeyCtrlN)
	m, cmd := typeAndSend(m, "Hello")

	// The user's message is visible before the reply arrives.
	assert.Equal(t, []string{"user:Hello"}, activeTexts(t, h.coord))
	assert.True(t, h.coord.IsPending(h.coord.ActiveID()))
	assert.Empty(t, m.InputValue())
	assert.Contains(t, m.View(), "Model is typing...")

	m, _ = update(m, findReply(t, runCmd(cmd)))

	assert.Equal(t, []string{"user:Hello", "model:Hi there!"}, activeTexts(t, h.coord))
	assert.False(t, h.coord.Loading())
	conv, _ := h.coord.Active()
	assert.Equal(t, "Hello", conv.Title)

	view := m.View()
	assert.Contains(t, view, "Hi there!")
	assert.NotContains(t, view, "Model is typing...")
	assert.Empty(t, h.notified.titles, "active conversation should not notify")
}

func TestSend_KeepsTextVerbatim(t *testing.T) {
	m, h := newTestModel(t, llmtest.Static("ok"))
	m, _ = press(m, tea.KeyCtrlN)

	text := "    indented code\n    return nil"
	m, cmd := typeAndSend(m, text)
	_, _ = update(m, findReply(t, runCmd(cmd)))

	assert.Equal(t, []string{"user:" + text, "model:ok"}, activeTexts(t, h.coord))
}

func TestSend_RemoteFailureShowsApology(t *testing.T) {
	m, h := newTestModel(t, llmtest.Failing(errors.New("boom")))

	m, _ = press(m, tea.KeyCtrlN)
	m, cmd := typeAndSend(m, "Hello")
	reply := findReply(t, runCmd(cmd))
	assert.True(t, reply.Reply.Failed())

	m, _ = update(m, reply)
	assert.Equal(t, []string{"user:Hello", "model:" + model.ApologyText}, activeTexts(t, h.coord))
	assert.Contains(t, m.View(), "Sorry, something went wrong.")
	assert.NotContains(t, m.View(), "boom")
}

func TestSend_ValidationErrors(t *testing.T) {
	t.Run("no active conversation", func(t *testing.T) {
		m, h := newTestModel(t, llmtest.Static("x"))

		m, cmd := typeAndSend(m, "Hello")
		assert.Nil(t, cmd)
		status, isErr := m.Status()
		assert.True(t, isErr)
		assert.Contains(t, status, "ctrl+n")
		assert.Empty(t, h.coord.Conversations())
		assert.Equal(t, "Hello", m.InputValue(), "rejected input should be kept")
	})

	t.Run("empty message", func(t *testing.T) {
		m, h := newTestModel(t, llmtest.Static("x"))
		m, _ = press(m, tea.KeyCtrlN)

		m, cmd := typeAndSend(m, "   ")
		assert.Nil(t, cmd)
		status, _ := m.Status()
		assert.Equal(t, "Type a message first", status)
		assert.Empty(t, activeTexts(t, h.coord))
	})

	t.Run("busy conversation", func(t *testing.T) {
		gate := llmtest.NewGate()
		m, h := newTestModel(t, llmtest.NewClient(gate.Reply("late")))
		m, _ = press(m, tea.KeyCtrlN)

		m, first := typeAndSend(m, "one")
		m, second := typeAndSend(m, "two")
		assert.Nil(t, second)
		status, isErr := m.Status()
		assert.True(t, isErr)
		assert.Contains(t, status, "Waiting")
		assert.Equal(t, "two", m.InputValue())
		assert.Equal(t, []string{"user:one"}, activeTexts(t, h.coord))

		gate.Release()
		m, _ = update(m, findReply(t, runCmd(first)))
		assert.Equal(t, []string{"user:one", "model:late"}, activeTexts(t, h.coord))
	})
}

// A reply started in one conversation lands there even after the user
// moved to a new one, and the user is told about it.
func TestReply_LandsInOriginatingConversation(t *testing.T) {
	gate := llmtest.NewGate()
	m, h := newTestModel(t, llmtest.NewClient(gate.Reply("Hi there!")))

	m, _ = press(m, tea.KeyCtrlN)
	c1 := h.coord.ActiveID()
	m, cmd := typeAndSend(m, "Hello")

	m, _ = press(m, tea.KeyCtrlN)
	c2 := h.coord.ActiveID()
	require.NotEqual(t, c1, c2)

	gate.Release()
	reply := findReply(t, runCmd(cmd))
	assert.Equal(t, c1, reply.Reply.ConversationID)

	m, notifyCmd := update(m, reply)
	runCmd(notifyCmd)

	conv1, err := h.coord.Conversation(c1)
	require.NoError(t, err)
	assert.Len(t, conv1.Messages, 2)
	assert.Equal(t, "Hello", conv1.Title)

	conv2, err := h.coord.Conversation(c2)
	require.NoError(t, err)
	assert.Empty(t, conv2.Messages)
	assert.Equal(t, model.PlaceholderTitle, conv2.Title)

	assert.Equal(t, []string{"Codey: Hello"}, h.notified.titles)
	assert.Equal(t, c2, h.coord.ActiveID())
	assert.NotContains(t, m.View(), "Hi there!")
}

// =============================================================================
// SIDEBAR
// =============================================================================

func TestSidebar_SelectConversation(t *testing.T) {
	m, h := newTestModel(t, llmtest.Static("x"))

	m, _ = press(m, tea.KeyCtrlN)
	older := h.coord.ActiveID()
	m, _ = press(m, tea.KeyCtrlN)
	newer := h.coord.ActiveID()

	m, _ = press(m, tea.KeyTab)
	assert.True(t, m.SidebarFocused())

	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, newer, h.coord.ActiveID(), "moving the cursor should not select")

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, older, h.coord.ActiveID())
	assert.False(t, m.SidebarFocused())

	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyUp)
	m, _ = press(m, tea.KeyUp)
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, newer, h.coord.ActiveID())
}

func TestView_Sidebar(t *testing.T) {
	m, _ := newTestModel(t, llmtest.Static("x"))
	m, _ = press(m, tea.KeyCtrlN)

	view := m.View()
	assert.Contains(t, view, "Conversations")
	assert.Contains(t, view, "> New Chat")
}

// =============================================================================
// SCREENS
// =============================================================================

func TestView_EmptyState(t *testing.T) {
	m, _ := newTestModel(t, llmtest.Static("x"))

	view := m.View()
	assert.Contains(t, view, "Gemini Chat")
	assert.Contains(t, view, "Press ctrl+n to start a new conversation.")
}

func TestView_ConfigMissing(t *testing.T) {
	m := New(Options{
		Theme:            styles.NewTheme("dark"),
		ConfigMissing:    true,
		CredentialEnvVar: "API_KEY",
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	assert.Contains(t, view, "API Key Not Found")
	assert.Contains(t, view, "Please make sure the API_KEY environment variable is set.")

	// No chat operation is reachable.
	m, cmd := press(m, tea.KeyCtrlN)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "API Key Not Found")

	_, cmd = press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// =============================================================================
// COPY, EXPORT, RELOAD
// =============================================================================

func TestCopyLastReply(t *testing.T) {
	m, h := newTestModel(t, llmtest.Static("copy me"))

	m, _ = press(m, tea.KeyCtrlN)
	m, _ = press(m, tea.KeyCtrlY)
	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Equal(t, "Nothing to copy yet", status)

	m, cmd := typeAndSend(m, "Hello")
	m, _ = update(m, findReply(t, runCmd(cmd)))

	m, _ = press(m, tea.KeyCtrlY)
	assert.Equal(t, []string{"copy me"}, h.copied)
	status, isErr = m.Status()
	assert.False(t, isErr)
	assert.Equal(t, "Copied reply to clipboard", status)
}

func TestExport(t *testing.T) {
	m, _ := newTestModel(t, llmtest.Static("exported reply"))

	m, _ = press(m, tea.KeyCtrlN)
	m, cmd := typeAndSend(m, "Hello")
	m, _ = update(m, findReply(t, runCmd(cmd)))

	m, cmd = press(m, tea.KeyCtrlS)
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	exported, ok := msgs[0].(ExportedMsg)
	require.True(t, ok)
	require.NoError(t, exported.Err)

	data, err := os.ReadFile(exported.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exported reply")

	m, _ = update(m, exported)
	status, _ := m.Status()
	assert.True(t, strings.HasPrefix(status, "Exported to "))
}

func TestExport_NoConversation(t *testing.T) {
	m, _ := newTestModel(t, llmtest.Static("x"))

	_, cmd := press(m, tea.KeyCtrlS)
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	assert.Error(t, msgs[0].(ExportedMsg).Err)
}

func TestConfigReload(t *testing.T) {
	m, h := newTestModel(t, llmtest.Static("x"))

	cfg := config.Default()
	cfg.Model = "gemini-2.5-flash"
	cfg.UI.Notifications = false
	m, _ = update(m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, "gemini-2.5-flash", h.coord.Sessions().Model())
	assert.False(t, m.notifier.Enabled())
	status, _ := m.Status()
	assert.Contains(t, status, "gemini-2.5-flash")

	m, _ = update(m, ConfigReloadedMsg{Err: errors.New("bad toml")})
	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "bad toml")
}

func TestConfigReload_ProviderChangeNeedsRestart(t *testing.T) {
	m, h := newTestModel(t, llmtest.Static("x"))

	cfg := config.Default()
	cfg.Provider = model.ProviderOpenAI
	cfg.Model = model.DefaultModel(model.ProviderOpenAI)
	cfg.UI.Notifications = false
	m, _ = update(m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, "gemini-2.5-pro", h.coord.Sessions().Model(),
		"the running client must not be handed another provider's model")
	assert.False(t, m.notifier.Enabled(), "other settings still apply")
	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.Contains(t, status, "Restart codey")
}

func TestNewChat_SessionFailureStillCreates(t *testing.T) {
	client := llmtest.Static("x")
	client.FailNewSession(errors.New("offline"))
	m, h := newTestModel(t, client)

	m, _ = press(m, tea.KeyCtrlN)
	assert.Len(t, h.coord.Conversations(), 1)
	status, isErr := m.Status()
	assert.True(t, isErr)
	assert.NotEmpty(t, status)

	// Sending to it fails with the apology instead of hanging.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	m.ctx = ctx
	m, cmd := typeAndSend(m, "Hello")
	_, _ = update(m, findReply(t, runCmd(cmd)))
	assert.Equal(t, []string{"user:Hello", "model:" + model.ApologyText}, activeTexts(t, h.coord))
}
