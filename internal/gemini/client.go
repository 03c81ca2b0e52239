// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini adapts the Google Gen AI SDK chat API to llm.Client.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/brettapps789/codey/internal/llm"
	"github.com/brettapps789/codey/internal/model"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-pro"

// Config configures a Client.
type Config struct {
	APIKey string

	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string

	// SystemPrompt, when set, is sent as the system instruction of every chat.
	SystemPrompt string

	// Timeout bounds each HTTP request. Zero leaves it to the context.
	Timeout time.Duration
}

// Client is an llm.Client for the Gemini API.
type Client struct {
	genai  *genai.Client
	config Config
}

// NewClient builds a client. It fails with llm.ErrNotConfigured when no API
// key is set; the SDK would otherwise fall back to ambient environment
// variables, which hides misconfiguration.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", llm.ErrNotConfigured)
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{genai: gc, config: cfg}, nil
}

// Provider implements llm.Client.
func (c *Client) Provider() string {
	return model.ProviderGemini
}

// NewSession implements llm.Client. Creating a chat is local; no request is
// made until the first Send.
func (c *Client) NewSession(ctx context.Context, modelID string) (llm.Session, error) {
	if modelID == "" {
		modelID = DefaultModel
	}

	var gcc *genai.GenerateContentConfig
	if c.config.SystemPrompt != "" {
		gcc = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(c.config.SystemPrompt, genai.RoleUser),
		}
	}

	chat, err := c.genai.Chats.Create(ctx, modelID, gcc, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: create chat: %w", err)
	}
	return &Session{chat: chat}, nil
}

// Session wraps one Gemini chat.
type Session struct {
	chat *genai.Chat
}

// Send implements llm.Session.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("gemini: send message: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", llm.ErrEmptyResponse
	}
	return reply, nil
}
