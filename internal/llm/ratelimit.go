// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm defines the contract codey uses to talk to a remote model.
package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// =============================================================================
// RATE LIMITED CLIENT
// =============================================================================

// RateLimitedClient shares one token bucket across every session it opens,
// so the provider sees at most the configured request rate no matter how
// many conversations are waiting on replies.
type RateLimitedClient struct {
	inner   Client
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps inner. perSecond <= 0 disables limiting and
// returns inner unchanged.
func NewRateLimitedClient(inner Client, perSecond float64, burst int) Client {
	if perSecond <= 0 {
		return inner
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Provider returns the wrapped client's provider.
func (c *RateLimitedClient) Provider() string {
	return c.inner.Provider()
}

// NewSession opens a session whose sends wait for the shared limiter.
func (c *RateLimitedClient) NewSession(ctx context.Context, model string) (Session, error) {
	sess, err := c.inner.NewSession(ctx, model)
	if err != nil {
		return nil, err
	}
	return &rateLimitedSession{inner: sess, limiter: c.limiter}, nil
}

type rateLimitedSession struct {
	inner   Session
	limiter *rate.Limiter
}

func (s *rateLimitedSession) Send(ctx context.Context, text string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return s.inner.Send(ctx, text)
}
