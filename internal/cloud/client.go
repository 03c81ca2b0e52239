// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud talks to OpenAI-compatible chat completion APIs.
package cloud

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brettapps789/codey/internal/llm"
	"github.com/brettapps789/codey/internal/model"
)

// DefaultTimeout bounds one chat completion request.
const DefaultTimeout = 120 * time.Second

// Error variables for common API failures.
var (
	// ErrAuthFailed indicates the API key was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrModelNotFound indicates the requested model does not exist.
	ErrModelNotFound = errors.New("model not found")
)

// APIError is an HTTP failure reported by the endpoint.
type APIError struct {
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("chat completion failed (HTTP %d): %s", e.Status, e.Message)
}

// Unwrap returns the sentinel matching the status, if any.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// CLIENT
// =============================================================================

// Config configures a Client.
type Config struct {
	APIKey string

	// BaseURL overrides the API root, e.g. https://openrouter.ai/api/v1.
	BaseURL string

	// SystemPrompt, when set, opens every session's history.
	SystemPrompt string

	Timeout time.Duration
}

// Client is an llm.Client for OpenAI-compatible endpoints.
type Client struct {
	api    openai.Client
	config Config
}

// NewClient builds a client. It fails with llm.ErrNotConfigured when no API
// key is set.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", llm.ErrNotConfigured)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		// Failed sends are terminal; the user retries by sending again.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		config: cfg,
	}, nil
}

// Provider implements llm.Client.
func (c *Client) Provider() string {
	return model.ProviderOpenAI
}

// NewSession implements llm.Client. No request is made until the first Send.
func (c *Client) NewSession(_ context.Context, modelID string) (llm.Session, error) {
	s := &Session{client: c, model: modelID}
	if c.config.SystemPrompt != "" {
		s.history = append(s.history, openai.SystemMessage(c.config.SystemPrompt))
	}
	return s, nil
}

// APIKeyMasked describes the configured key without revealing any of it.
func (c *Client) APIKeyMasked() string {
	return MaskKey(c.config.APIKey)
}

// MaskKey returns a length and SHA-256 fingerprint for key, never key
// fragments.
func MaskKey(key string) string {
	if key == "" {
		return "[not set]"
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(key), hex.EncodeToString(h[:4]))
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds one conversation's history. History only grows on success,
// so a failed send leaves nothing half-recorded.
type Session struct {
	client *Client
	model  string

	mu      sync.Mutex
	history []openai.ChatCompletionMessageParamUnion
}

// Send implements llm.Session.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(s.history)+1)
	messages = append(messages, s.history...)
	messages = append(messages, openai.UserMessage(text))

	resp, err := s.client.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", llm.ErrEmptyResponse
	}

	reply := resp.Choices[0].Message.Content
	s.history = append(messages, openai.AssistantMessage(reply))
	return reply, nil
}

// Len returns the number of history entries, including any system prompt.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// classifyError maps SDK errors onto the package's error taxonomy.
func classifyError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("chat completion request: %w", err)
	}

	out := &APIError{Status: apiErr.StatusCode, Message: apiErr.Message}
	if out.Message == "" {
		out.Message = http.StatusText(apiErr.StatusCode)
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		out.Cause = ErrAuthFailed
	case http.StatusTooManyRequests:
		out.Cause = ErrRateLimited
	case http.StatusNotFound:
		out.Cause = ErrModelNotFound
	}
	return out
}
