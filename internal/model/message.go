// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ApologyText is the model reply recorded when a round trip fails. The
// underlying error never reaches the conversation.
const ApologyText = "Sorry, something went wrong. Please try again."

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleModel:
		return "Model"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single turn in a conversation. Messages are values and are
// never edited after they are appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// IsError marks the apology recorded in place of a failed reply.
	IsError bool `json:"is_error,omitempty"`
}

// NewUserMessage creates a user message carrying text verbatim.
func NewUserMessage(text string) Message {
	return newMessage(RoleUser, text)
}

// NewModelMessage creates a model reply carrying text verbatim.
func NewModelMessage(text string) Message {
	return newMessage(RoleModel, text)
}

// NewErrorMessage creates the model-role apology used when a send fails.
func NewErrorMessage() Message {
	msg := newMessage(RoleModel, ApologyText)
	msg.IsError = true
	return msg
}

func newMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// IsUser returns true if this is a user message.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsModel returns true if this is a model message, including apologies.
func (m Message) IsModel() bool {
	return m.Role == RoleModel
}
