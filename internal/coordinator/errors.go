// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package coordinator turns user intents into remote round trips.
package coordinator

import "errors"

// Validation errors returned by Begin. None of them changes any state.
var (
	ErrEmptyMessage         = errors.New("message is empty")
	ErrNoActiveConversation = errors.New("no active conversation")
	ErrConversationBusy     = errors.New("conversation is waiting for a reply")
)

// ErrSessionMissing means a send targeted a conversation with no registered
// session. It is handled like any remote failure.
var ErrSessionMissing = errors.New("no session for conversation")

// IsValidation reports whether err is one of the Begin validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrNoActiveConversation) ||
		errors.Is(err, ErrConversationBusy)
}
