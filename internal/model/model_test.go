// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessages(t *testing.T) {
	u := NewUserMessage("Hello")
	if u.Role != RoleUser || u.Text != "Hello" {
		t.Errorf("NewUserMessage = %+v", u)
	}
	if u.ID == "" {
		t.Error("message ID should not be empty")
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	m := NewModelMessage("Hi there!")
	if !m.IsModel() || m.IsError {
		t.Errorf("NewModelMessage = %+v", m)
	}

	e := NewErrorMessage()
	if !e.IsModel() || !e.IsError || e.Text != ApologyText {
		t.Errorf("NewErrorMessage = %+v", e)
	}

	if NewUserMessage("a").ID == NewUserMessage("a").ID {
		t.Error("message IDs should be unique")
	}
}

func TestMessage_TextIsVerbatim(t *testing.T) {
	raw := "  **bold**\n\n```go\nfmt.Println()\n```  "
	if got := NewModelMessage(raw).Text; got != raw {
		t.Errorf("Text = %q, want %q", got, raw)
	}
}

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser.DisplayName() = %q", RoleUser.DisplayName())
	}
	if RoleModel.DisplayName() != "Model" {
		t.Errorf("RoleModel.DisplayName() = %q", RoleModel.DisplayName())
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	c := NewConversation("conv-1")
	if c.ID != "conv-1" {
		t.Errorf("ID = %q", c.ID)
	}
	if c.Title != PlaceholderTitle || !c.IsUntitled() {
		t.Errorf("Title = %q, want placeholder", c.Title)
	}
	if !c.IsEmpty() {
		t.Error("new conversation should be empty")
	}
	if _, ok := c.LastMessage(); ok {
		t.Error("LastMessage on empty conversation should report false")
	}
}

func TestConversation_Clone(t *testing.T) {
	c := NewConversation("conv-1")
	c.Messages = append(c.Messages, NewUserMessage("Hello"))

	clone := c.Clone()
	clone.Messages[0].Text = "changed"
	clone.Messages = append(clone.Messages, NewModelMessage("x"))

	if c.Messages[0].Text != "Hello" {
		t.Error("Clone shares message storage with the original")
	}
	if len(c.Messages) != 1 {
		t.Errorf("original has %d messages, want 1", len(c.Messages))
	}
}

func TestConversation_LastModelReply(t *testing.T) {
	c := NewConversation("conv-1")
	c.Messages = append(c.Messages,
		NewUserMessage("q1"),
		NewModelMessage("a1"),
		NewUserMessage("q2"),
		NewErrorMessage(),
	)

	reply, ok := c.LastModelReply()
	if !ok || reply.Text != "a1" {
		t.Errorf("LastModelReply = %q, %v; want a1 (apologies skipped)", reply.Text, ok)
	}
}

// =============================================================================
// TITLE TESTS
// =============================================================================

func TestTitleFromText(t *testing.T) {
	fifty := strings.Repeat("abcdefghij", 5)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "Hello", "Hello"},
		{"exactly thirty", fifty[:30], fifty[:30]},
		{"thirty one", fifty[:31], fifty[:30] + "..."},
		{"fifty", fifty, fifty[:30] + "..."},
		{"multibyte", strings.Repeat("é", 31), strings.Repeat("é", 30) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromText(tt.text); got != tt.want {
				t.Errorf("TitleFromText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShouldRetitle(t *testing.T) {
	user := NewUserMessage("Hello")
	reply := NewModelMessage("Hi")

	tests := []struct {
		name  string
		prior []Message
		next  Message
		want  bool
	}{
		{"first reply", []Message{user}, reply, true},
		{"apology", []Message{user}, NewErrorMessage(), false},
		{"user message", []Message{user}, NewUserMessage("again"), false},
		{"empty", nil, reply, false},
		{"second exchange", []Message{user, reply, user}, reply, false},
		{"after failure", []Message{user, NewErrorMessage(), user}, reply, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRetitle(tt.prior, tt.next); got != tt.want {
				t.Errorf("ShouldRetitle() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// MODEL INFO TESTS
// =============================================================================

func TestLookupModel(t *testing.T) {
	info := LookupModel("gemini-2.5-pro")
	if info.Name != "Gemini 2.5 Pro" || info.Provider != ProviderGemini {
		t.Errorf("LookupModel(gemini-2.5-pro) = %+v", info)
	}

	unknown := LookupModel("my-finetune")
	if unknown.Name != "my-finetune" {
		t.Errorf("unknown model Name = %q, want the ID", unknown.Name)
	}
}

func TestDefaultModel(t *testing.T) {
	if got := DefaultModel("gemini"); got != "gemini-2.5-pro" {
		t.Errorf("DefaultModel(gemini) = %q", got)
	}
	if got := DefaultModel("OLLAMA"); got != "llama3.2" {
		t.Errorf("DefaultModel(OLLAMA) = %q", got)
	}
	if got := DefaultModel("nope"); got != "" {
		t.Errorf("DefaultModel(nope) = %q, want empty", got)
	}
	if !IsKnownProvider("openai") || IsKnownProvider("nope") {
		t.Error("IsKnownProvider mismatch")
	}
}
