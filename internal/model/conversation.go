// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/brettapps789/codey/internal/util"
)

// PlaceholderTitle is the title of a conversation until its first exchange
// succeeds.
const PlaceholderTitle = "New Chat"

// TitleMaxRunes is how much of the first user message survives in a title.
const TitleMaxRunes = 30

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a titled, append-only sequence of messages.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// NewConversation creates an empty conversation with the placeholder title.
func NewConversation(id string) *Conversation {
	return &Conversation{
		ID:        id,
		Title:     PlaceholderTitle,
		CreatedAt: time.Now(),
		Messages:  make([]Message, 0),
	}
}

// Clone returns a copy that shares no mutable state with c.
func (c *Conversation) Clone() Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

// LastMessage returns the most recent message, if any.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastModelReply returns the most recent successful model message.
func (c Conversation) LastModelReply() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if m := c.Messages[i]; m.IsModel() && !m.IsError {
			return m, true
		}
	}
	return Message{}, false
}

// IsEmpty returns true if no message has been exchanged yet.
func (c Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// IsUntitled returns true while the placeholder title is still in place.
func (c Conversation) IsUntitled() bool {
	return c.Title == PlaceholderTitle
}

// =============================================================================
// TITLES
// =============================================================================

// TitleFromText derives a conversation title from the first user message:
// the first TitleMaxRunes runes, with "..." appended if anything was cut.
func TitleFromText(text string) string {
	return util.TruncateRunes(text, TitleMaxRunes)
}

// ShouldRetitle reports whether appending next to a conversation that
// currently holds prior should replace the placeholder title. That happens
// once: for the first successful model reply that follows exactly one user
// message.
func ShouldRetitle(prior []Message, next Message) bool {
	if !next.IsModel() || next.IsError {
		return false
	}
	return len(prior) == 1 && prior[0].IsUser()
}
