// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package coordinator turns user intents into remote round trips.
package coordinator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/session"
	"github.com/brettapps789/codey/internal/storage"
)

// =============================================================================
// TYPES
// =============================================================================

// Request is a send that has been accepted by Begin. Its ConversationID was
// captured when the send began and is the only place the reply will go.
type Request struct {
	ConversationID string
	Text           string
	UserMessage    model.Message
	StartedAt      time.Time
}

// Reply is the outcome of a Request after reconciliation.
type Reply struct {
	ConversationID string
	Message        model.Message

	// Err holds the underlying failure. It is for logs and callers that care;
	// the conversation only ever sees the apology.
	Err      error
	Duration time.Duration
}

// Failed returns true if the round trip did not produce a real reply.
func (r Reply) Failed() bool {
	return r.Err != nil
}

// Coordinator owns the conversation store and the session registry and is
// the only writer of replies.
type Coordinator struct {
	store    *storage.ConversationStore
	sessions *session.Registry
	pending  *pendingSet

	log     zerolog.Logger
	timeout time.Duration
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the diagnostic logger. Failures are logged here and never
// shown to the user.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.log = log
	}
}

// WithRequestTimeout bounds each remote call. Zero, the default, leaves the
// call bounded only by the client's transport.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// New creates a coordinator over store and sessions.
func New(store *storage.ConversationStore, sessions *session.Registry, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		sessions: sessions,
		pending:  newPendingSet(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

// NewChat creates a conversation, makes it active and opens its session.
// The conversation exists even if the session could not be opened; the error
// is returned so the caller can surface it, and a later send will fail with
// the apology.
func (c *Coordinator) NewChat(ctx context.Context) (model.Conversation, error) {
	conv := c.store.Create()

	if _, err := c.sessions.Ensure(ctx, conv.ID); err != nil {
		c.log.Error().Err(err).Str("conversation_id", conv.ID).Msg("failed to open session")
		return conv, err
	}

	c.log.Debug().Str("conversation_id", conv.ID).Str("model", c.sessions.Model()).Msg("conversation created")
	return conv, nil
}

// Select makes conversationID active.
func (c *Coordinator) Select(conversationID string) {
	c.store.Select(conversationID)
}

// Conversations returns every conversation, newest first.
func (c *Coordinator) Conversations() []model.Conversation {
	return c.store.List()
}

// Active returns the active conversation.
func (c *Coordinator) Active() (model.Conversation, bool) {
	return c.store.Active()
}

// ActiveID returns the current selection, which may be empty.
func (c *Coordinator) ActiveID() string {
	return c.store.ActiveID()
}

// Conversation returns one conversation by ID.
func (c *Coordinator) Conversation(conversationID string) (model.Conversation, error) {
	return c.store.Get(conversationID)
}

// Sessions exposes the registry, e.g. to change the model on config reload.
func (c *Coordinator) Sessions() *session.Registry {
	return c.sessions
}

// =============================================================================
// PENDING STATE
// =============================================================================

// IsPending returns true while conversationID waits for a reply.
func (c *Coordinator) IsPending(conversationID string) bool {
	return c.pending.has(conversationID)
}

// PendingSince returns when conversationID started waiting.
func (c *Coordinator) PendingSince(conversationID string) (time.Time, bool) {
	return c.pending.startedAt(conversationID)
}

// Loading returns true while any conversation waits for a reply.
func (c *Coordinator) Loading() bool {
	return c.pending.count() > 0
}

// =============================================================================
// SENDING
// =============================================================================

// Begin accepts text for the active conversation. On success the user's
// message is already in the store and the conversation is pending; pass the
// Request to Complete. On error nothing has changed.
func (c *Coordinator) Begin(text string) (*Request, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	active, ok := c.store.Active()
	if !ok {
		return nil, ErrNoActiveConversation
	}
	targetID := active.ID

	if !c.pending.tryMark(targetID) {
		return nil, ErrConversationBusy
	}

	msg := model.NewUserMessage(text)
	if !c.store.Append(targetID, msg) {
		// Conversations are never removed, so this only guards the contract.
		c.pending.clear(targetID)
		return nil, ErrNoActiveConversation
	}

	c.log.Debug().Str("conversation_id", targetID).Int("chars", len(text)).Msg("send started")

	return &Request{
		ConversationID: targetID,
		Text:           text,
		UserMessage:    msg,
		StartedAt:      time.Now(),
	}, nil
}

// Complete performs the remote call for req and appends the result to
// req.ConversationID, whatever is active by then. It always clears the
// pending mark and never returns an error to the caller; failures become the
// apology message and are logged.
func (c *Coordinator) Complete(ctx context.Context, req *Request) Reply {
	defer c.pending.clear(req.ConversationID)

	text, err := c.roundTrip(ctx, req)

	reply := Reply{
		ConversationID: req.ConversationID,
		Err:            err,
		Duration:       time.Since(req.StartedAt),
	}

	if err != nil {
		reply.Message = model.NewErrorMessage()
		c.log.Error().
			Err(err).
			Str("conversation_id", req.ConversationID).
			Dur("elapsed", reply.Duration).
			Msg("Error sending message")
	} else {
		reply.Message = model.NewModelMessage(text)
		c.log.Debug().
			Str("conversation_id", req.ConversationID).
			Dur("elapsed", reply.Duration).
			Int("chars", len(text)).
			Msg("reply received")
	}

	c.store.Append(req.ConversationID, reply.Message)
	return reply
}

// SendMessage runs Begin and Complete back to back. It blocks for the whole
// round trip.
func (c *Coordinator) SendMessage(ctx context.Context, text string) (Reply, error) {
	req, err := c.Begin(text)
	if err != nil {
		return Reply{}, err
	}
	return c.Complete(ctx, req), nil
}

func (c *Coordinator) roundTrip(ctx context.Context, req *Request) (string, error) {
	sess, ok := c.sessions.Get(req.ConversationID)
	if !ok {
		return "", fmt.Errorf("%w %s", ErrSessionMissing, req.ConversationID)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return sess.Send(ctx, req.Text)
}
