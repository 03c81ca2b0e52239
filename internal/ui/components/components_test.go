// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/ui/styles"
)

type upperRenderer struct{}

func (upperRenderer) Markdown(text string) string { return strings.ToUpper(text) }

func TestMessageBubble_Roles(t *testing.T) {
	theme := styles.NewTheme("dark")

	user := NewMessageBubble(model.NewUserMessage("hello there"), theme, upperRenderer{}).View()
	if !strings.Contains(user, "You") || !strings.Contains(user, "hello there") {
		t.Errorf("user bubble = %q", user)
	}

	reply := NewMessageBubble(model.NewModelMessage("general kenobi"), theme, upperRenderer{}).View()
	if !strings.Contains(reply, "Model") || !strings.Contains(reply, "GENERAL KENOBI") {
		t.Errorf("model bubble should be markdown rendered: %q", reply)
	}

	apology := NewMessageBubble(model.NewErrorMessage(), theme, upperRenderer{}).View()
	if !strings.Contains(apology, "Sorry") {
		t.Errorf("error bubble should show the apology verbatim: %q", apology)
	}
}

func TestMessageBubble_NilRenderer(t *testing.T) {
	theme := styles.NewTheme("dark")
	out := NewMessageBubble(model.NewModelMessage("**plain**"), theme, nil).View()
	if !strings.Contains(out, "**plain**") {
		t.Errorf("nil renderer should show raw text: %q", out)
	}
}

func TestRenderTranscript_Order(t *testing.T) {
	theme := styles.NewTheme("dark")
	msgs := []model.Message{
		model.NewUserMessage("first"),
		model.NewModelMessage("second"),
	}
	out := RenderTranscript(msgs, 60, theme, nil)
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Error("transcript out of order")
	}
}

func TestSidebar_View(t *testing.T) {
	theme := styles.NewTheme("dark")
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	a := model.NewConversation("conv-2")
	a.Title = "Newest conversation"
	a.CreatedAt = now.Add(-time.Minute)
	b := model.NewConversation("conv-1")
	b.Title = "A very long conversation title that will not fit"
	b.CreatedAt = now.Add(-2 * time.Hour)
	b.Messages = append(b.Messages, model.NewUserMessage("x"), model.NewModelMessage("y"))

	s := NewSidebar(theme)
	s.Now = func() time.Time { return now }
	s.Width = 30
	s.Items = []SidebarItem{
		{Conversation: a.Clone(), Active: true, Pending: true},
		{Conversation: b.Clone()},
	}
	out := s.View()

	if !strings.Contains(out, "Conversations") {
		t.Error("missing heading")
	}
	if !strings.Contains(out, "> Newest conversation") {
		t.Errorf("active marker missing: %q", out)
	}
	if !strings.Contains(out, "typing...") {
		t.Error("pending conversation not marked")
	}
	if !strings.Contains(out, "2 msgs, 2 hours ago") {
		t.Errorf("meta line missing: %q", out)
	}
	if strings.Contains(out, "will not fit") {
		t.Error("long title not truncated")
	}
	if strings.Index(out, "Newest") > strings.Index(out, "A very") {
		t.Error("items out of order")
	}
}

func TestSidebar_Empty(t *testing.T) {
	s := NewSidebar(styles.NewTheme("dark"))
	if !strings.Contains(s.View(), "No conversations") {
		t.Error("empty sidebar should say so")
	}
}

func TestSidebar_ClampCursor(t *testing.T) {
	s := NewSidebar(styles.NewTheme("dark"))
	s.Items = make([]SidebarItem, 3)

	s.Cursor = 7
	s.ClampCursor()
	if s.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", s.Cursor)
	}
	s.Cursor = -1
	s.ClampCursor()
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", s.Cursor)
	}
}

func TestStatusBar_DropsHintsThatDoNotFit(t *testing.T) {
	theme := styles.NewTheme("dark")
	bar := NewStatusBar(theme)
	bar.Model = "gemini-2.5-pro"
	bar.Keys = []key.Binding{
		key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}

	bar.Width = 120
	wide := bar.View()
	if !strings.Contains(wide, "new chat") || !strings.Contains(wide, "quit") {
		t.Errorf("wide bar missing hints: %q", wide)
	}

	bar.Width = 30
	narrow := bar.View()
	if !strings.Contains(narrow, "gemini-2.5-pro") {
		t.Error("model name dropped")
	}
	if strings.Contains(narrow, "quit") {
		t.Error("hint should be dropped when it does not fit")
	}
}

func TestStatusBar_StatusReplacesModel(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme("dark"))
	bar.Model = "gemini-2.5-pro"
	bar.Status = "Exported to chat.md"
	bar.Width = 80
	if !strings.Contains(bar.View(), "Exported to chat.md") {
		t.Error("status not shown")
	}
}

func TestScreens(t *testing.T) {
	theme := styles.NewTheme("dark")

	empty := EmptyState(theme, "Gemini", 80, 20)
	if !strings.Contains(empty, "Gemini Chat") || !strings.Contains(empty, "ctrl+n") {
		t.Errorf("empty state = %q", empty)
	}

	missing := ConfigMissing(theme, "API_KEY", 80, 20)
	if !strings.Contains(missing, "API Key Not Found") {
		t.Error("missing title")
	}
	if !strings.Contains(missing, "Please make sure the API_KEY environment variable is set.") {
		t.Errorf("missing instructions: %q", missing)
	}
}
