// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session maps conversations to live remote chat sessions.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/brettapps789/codey/internal/llm"
)

// =============================================================================
// SESSION REGISTRY
// =============================================================================

// Registry holds at most one llm.Session per conversation ID.
type Registry struct {
	mu sync.Mutex

	client   llm.Client
	model    string
	sessions map[string]llm.Session
}

// NewRegistry creates a registry that opens sessions for model through
// client. A nil client is allowed; Ensure then fails with
// llm.ErrNotConfigured.
func NewRegistry(client llm.Client, model string) *Registry {
	return &Registry{
		client:   client,
		model:    model,
		sessions: make(map[string]llm.Session),
	}
}

// Ensure returns the session for conversationID, creating it if needed.
// Nothing is stored when creation fails.
func (r *Registry) Ensure(ctx context.Context, conversationID string) (llm.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[conversationID]; ok {
		return sess, nil
	}
	if r.client == nil {
		return nil, llm.ErrNotConfigured
	}

	// Held under the lock so two callers cannot both create a session for
	// the same conversation.
	sess, err := r.client.NewSession(ctx, r.model)
	if err != nil {
		return nil, fmt.Errorf("create session for %s: %w", conversationID, err)
	}
	r.sessions[conversationID] = sess
	return sess, nil
}

// Get returns the session for conversationID without creating one.
func (r *Registry) Get(conversationID string) (llm.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[conversationID]
	return sess, ok
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Model returns the model ID used for new sessions.
func (r *Registry) Model() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model
}

// SetModel changes the model for sessions created from now on. Existing
// sessions keep the model they were opened with.
func (r *Registry) SetModel(model string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.model = model
}

// Available returns true if the registry can create sessions.
func (r *Registry) Available() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client != nil
}

// Provider returns the backing client's provider name, or "".
func (r *Registry) Provider() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client == nil {
		return ""
	}
	return r.client.Provider()
}
