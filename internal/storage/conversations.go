// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage holds the in-memory conversation store for codey.
package storage

import (
	"sync"

	"github.com/brettapps789/codey/internal/model"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore owns every conversation and the active selection.
// It is safe for concurrent use: replies are reconciled from command
// goroutines while the UI reads on its own loop.
type ConversationStore struct {
	mu sync.RWMutex

	// conversations is ordered newest first.
	conversations []*model.Conversation
	byID          map[string]*model.Conversation
	activeID      string

	ids IDGenerator
}

// Option configures a ConversationStore.
type Option func(*ConversationStore)

// WithIDGenerator replaces the snowflake ID source.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *ConversationStore) {
		s.ids = g
	}
}

// NewConversationStore creates an empty store with no active conversation.
func NewConversationStore(opts ...Option) *ConversationStore {
	s := &ConversationStore{
		byID: make(map[string]*model.Conversation),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = defaultIDs()
	}
	return s
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Create allocates a new empty conversation, puts it at the head of the
// list and makes it active.
func (s *ConversationStore) Create() model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := model.NewConversation(s.ids.NextID())
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.byID[conv.ID] = conv
	s.activeID = conv.ID

	return conv.Clone()
}

// Append adds msg to the conversation with the given ID. Appending to an
// unknown ID is a no-op and returns false. The first successful model reply
// that follows exactly one user message retitles the conversation.
func (s *ConversationStore) Append(conversationID string, msg model.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.byID[conversationID]
	if !ok {
		return false
	}

	if model.ShouldRetitle(conv.Messages, msg) {
		conv.Title = model.TitleFromText(conv.Messages[0].Text)
	}
	conv.Messages = append(conv.Messages, msg)
	return true
}

// Select makes conversationID active. The ID is not validated; selecting an
// unknown ID leaves the store with no usable active conversation.
func (s *ConversationStore) Select(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = conversationID
}

// =============================================================================
// READS
// =============================================================================

// Active returns a copy of the active conversation. It reports false when
// nothing is selected or the selection names no conversation.
func (s *ConversationStore) Active() (model.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.byID[s.activeID]
	if !ok {
		return model.Conversation{}, false
	}
	return conv.Clone(), true
}

// ActiveID returns the raw selection, which may be empty or stale.
func (s *ConversationStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Get returns a copy of one conversation.
func (s *ConversationStore) Get(conversationID string) (model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.byID[conversationID]
	if !ok {
		return model.Conversation{}, ErrConversationNotFound
	}
	return conv.Clone(), nil
}

// List returns copies of all conversations, newest first.
func (s *ConversationStore) List() []model.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Conversation, len(s.conversations))
	for i, conv := range s.conversations {
		out[i] = conv.Clone()
	}
	return out
}

// Len returns the number of conversations.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// IndexOf returns the list position of conversationID, or -1.
func (s *ConversationStore) IndexOf(conversationID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, conv := range s.conversations {
		if conv.ID == conversationID {
			return i
		}
	}
	return -1
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrConversationNotFound is returned when a conversation doesn't exist.
// Use errors.Is(err, ErrConversationNotFound) to check for this error.
var ErrConversationNotFound = &ConversationError{Message: "conversation not found"}

// ConversationError represents a conversation-related error.
type ConversationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing conversation errors.
func (e *ConversationError) Is(target error) bool {
	t, ok := target.(*ConversationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}
