// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for a local Ollama server.
package ollama

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/brettapps789/codey/internal/llm"
	"github.com/brettapps789/codey/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches any ClientError of the same known type, so
// errors.Is(err, ErrTimeout) works for wrapped and freshly built errors.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Type != ErrTypeUnknown && e.Type == t.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434).
	// The IPv4 literal avoids slow IPv6 fallback for "localhost" on Windows.
	BaseURL string

	// Timeout for a whole chat request (default: 5m). Local models can be
	// slow to load on first use.
	Timeout time.Duration

	// SystemPrompt, when set, opens every session's history.
	SystemPrompt string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:11434",
		Timeout: 5 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is an llm.Client for a local Ollama server. It is safe for
// concurrent use.
type Client struct {
	config *ClientConfig
	http   *resty.Client
}

// NewClient creates a new Ollama client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Ollama client. Zero fields take their
// defaults.
func NewClientWithConfig(config *ClientConfig) *Client {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}

	rc := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{config: config, http: rc}
}

// Provider implements llm.Client.
func (c *Client) Provider() string {
	return model.ProviderOllama
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// CheckRunning verifies that Ollama is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return classifyTransportError(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeNotRunning,
			Message: "unexpected status from Ollama: " + resp.Status(),
		}
	}
	return nil
}

// Chat sends messages to /api/chat and returns the complete response.
func (c *Client) Chat(ctx context.Context, modelID string, messages []Message) (*ChatResponse, error) {
	var (
		result ChatResponse
		apiErr OllamaError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(ChatRequest{Model: modelID, Messages: messages, Stream: false}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/api/chat")
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, &ClientError{Type: ErrTypeModelNotFound, Message: "model not found: " + modelID}
	}
	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = "chat request failed: " + resp.Status()
		}
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: msg}
	}

	return &result, nil
}

// NewSession implements llm.Client. No request is made until the first Send.
func (c *Client) NewSession(_ context.Context, modelID string) (llm.Session, error) {
	s := &Session{client: c, model: modelID}
	if c.config.SystemPrompt != "" {
		s.history = append(s.history, Message{Role: "system", Content: c.config.SystemPrompt})
	}
	return s, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running", Cause: err}
}

// IsNotRunning checks if an error indicates Ollama is not running.
func IsNotRunning(err error) bool {
	return errors.Is(err, ErrNotRunning)
}

// =============================================================================
// SESSION
// =============================================================================

// Session keeps one conversation's history. History only grows on success.
type Session struct {
	client *Client
	model  string

	mu      sync.Mutex
	history []Message
}

// Send implements llm.Session.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]Message, 0, len(s.history)+1)
	messages = append(messages, s.history...)
	messages = append(messages, Message{Role: "user", Content: text})

	resp, err := s.client.Chat(ctx, s.model, messages)
	if err != nil {
		return "", err
	}
	if resp.Message.Content == "" {
		return "", llm.ErrEmptyResponse
	}

	s.history = append(messages, Message{Role: "assistant", Content: resp.Message.Content})
	return resp.Message.Content, nil
}

// History returns a copy of the session's messages.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}
