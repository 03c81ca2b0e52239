// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/brettapps789/codey/internal/llm"
)

// ReplyFunc computes the reply for one Send.
type ReplyFunc func(ctx context.Context, text string) (string, error)

// Client is a scripted llm.Client. Every session it opens answers through
// Reply.
type Client struct {
	mu sync.Mutex

	reply         ReplyFunc
	newSessionErr error
	sessions      []*Session
}

// NewClient returns a client whose sessions answer with reply.
func NewClient(reply ReplyFunc) *Client {
	return &Client{reply: reply}
}

// Static returns a client that always answers with text.
func Static(text string) *Client {
	return NewClient(func(context.Context, string) (string, error) {
		return text, nil
	})
}

// Failing returns a client whose sends all fail with err.
func Failing(err error) *Client {
	return NewClient(func(context.Context, string) (string, error) {
		return "", err
	})
}

// FailNewSession makes subsequent NewSession calls return err.
func (c *Client) FailNewSession(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.newSessionErr = err
}

// Provider implements llm.Client.
func (c *Client) Provider() string {
	return "fake"
}

// NewSession implements llm.Client.
func (c *Client) NewSession(_ context.Context, model string) (llm.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.newSessionErr != nil {
		return nil, c.newSessionErr
	}
	s := &Session{Model: model, client: c}
	c.sessions = append(c.sessions, s)
	return s, nil
}

// SessionCount returns how many sessions were opened.
func (c *Client) SessionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *Client) replyFunc() ReplyFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reply
}

// Session records what was sent to it.
type Session struct {
	Model string

	mu     sync.Mutex
	sent   []string
	client *Client
}

// Send implements llm.Session.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	s.sent = append(s.sent, text)
	s.mu.Unlock()

	return s.client.replyFunc()(ctx, text)
}

// Sent returns the texts received so far.
func (s *Session) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

// =============================================================================
// GATE
// =============================================================================

// Gate holds every reply until Release is called, so tests can act while a
// round trip is outstanding.
type Gate struct {
	arrived chan string
	release chan struct{}
	once    sync.Once
}

// NewGate creates a closed gate.
func NewGate() *Gate {
	return &Gate{
		arrived: make(chan string, 16),
		release: make(chan struct{}),
	}
}

// Reply returns a ReplyFunc that announces the text on Arrived, waits for
// Release, then answers with reply.
func (g *Gate) Reply(reply string) ReplyFunc {
	return func(ctx context.Context, text string) (string, error) {
		g.arrived <- text
		select {
		case <-g.release:
			return reply, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Arrived delivers the text of each send as it reaches the gate.
func (g *Gate) Arrived() <-chan string {
	return g.arrived
}

// Release lets every held and future reply through.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.release) })
}
