// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider builds the llm.Client selected by configuration.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/cloud"
	"github.com/brettapps789/codey/internal/config"
	"github.com/brettapps789/codey/internal/gemini"
	"github.com/brettapps789/codey/internal/llm"
	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/ollama"
)

// probeTimeout bounds the startup reachability check for a local server.
const probeTimeout = 2 * time.Second

// New returns the client for cfg.Provider, wrapped in the configured rate
// limit. It returns llm.ErrNotConfigured (wrapped) when the provider needs
// a credential that is missing; callers show the setup screen in that case.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (llm.Client, error) {
	var (
		client llm.Client
		err    error
	)

	switch cfg.Provider {
	case model.ProviderGemini:
		client, err = gemini.NewClient(ctx, gemini.Config{
			APIKey:       cfg.Gemini.APIKey,
			BaseURL:      cfg.Gemini.BaseURL,
			SystemPrompt: cfg.SystemPrompt,
		})

	case model.ProviderOpenAI:
		client, err = cloud.NewClient(cloud.Config{
			APIKey:       cfg.OpenAI.APIKey,
			BaseURL:      cfg.OpenAI.BaseURL,
			SystemPrompt: cfg.SystemPrompt,
		})
		if err == nil {
			log.Debug().Str("key", cloud.MaskKey(cfg.OpenAI.APIKey)).Msg("OpenAI client ready")
		}

	case model.ProviderOllama:
		oc := ollama.NewClientWithConfig(&ollama.ClientConfig{
			BaseURL:      cfg.Ollama.URL,
			SystemPrompt: cfg.SystemPrompt,
		})
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		if perr := oc.CheckRunning(probeCtx); perr != nil {
			// Not fatal: the server may be started later.
			log.Warn().Err(perr).Str("url", oc.BaseURL()).Msg("Ollama not reachable")
		}
		cancel()
		client = oc

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}

	log.Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("Model client initialized")

	return llm.NewRateLimitedClient(client, cfg.Request.RateLimit, cfg.Request.Burst), nil
}
