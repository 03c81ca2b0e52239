// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm defines the contract codey uses to talk to a remote model.
package llm

import (
	"context"
	"errors"
)

// Client creates remote chat sessions. Implementations must be safe for
// concurrent use.
type Client interface {
	// NewSession opens a conversation context for model.
	NewSession(ctx context.Context, model string) (Session, error)

	// Provider names the backend, e.g. "gemini".
	Provider() string
}

// Session is one remote conversation. Send is never called concurrently on
// the same session.
type Session interface {
	// Send delivers text and returns the complete reply.
	Send(ctx context.Context, text string) (string, error)
}

var (
	// ErrNotConfigured means no client can be built, usually because the
	// credential is missing. It is fatal for the whole application.
	ErrNotConfigured = errors.New("model client not configured")

	// ErrEmptyResponse is returned when the provider answers with no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// IsNotConfigured reports whether err is a configuration failure.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}
