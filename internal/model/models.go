// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import "strings"

// Provider names understood by the client factory.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// =============================================================================
// MODEL INFO
// =============================================================================

// ModelInfo describes a remote model for display purposes.
type ModelInfo struct {
	ID       string
	Name     string
	Provider string
}

// knownModels is intentionally short; unknown IDs still work and are shown
// as-is.
var knownModels = []ModelInfo{
	{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro", Provider: ProviderGemini},
	{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Provider: ProviderGemini},
	{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Provider: ProviderGemini},
	{ID: "gpt-4o", Name: "GPT-4o", Provider: ProviderOpenAI},
	{ID: "gpt-4o-mini", Name: "GPT-4o mini", Provider: ProviderOpenAI},
	{ID: "llama3.2", Name: "Llama 3.2", Provider: ProviderOllama},
	{ID: "qwen2.5-coder:7b", Name: "Qwen 2.5 Coder 7B", Provider: ProviderOllama},
}

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.5-pro",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3.2",
}

// LookupModel returns display info for id. Unknown models get a ModelInfo
// whose Name is the ID itself.
func LookupModel(id string) ModelInfo {
	for _, m := range knownModels {
		if strings.EqualFold(m.ID, id) {
			return m
		}
	}
	return ModelInfo{ID: id, Name: id}
}

// DefaultModel returns the default model ID for provider, or "" if the
// provider is unknown.
func DefaultModel(provider string) string {
	return defaultModels[strings.ToLower(provider)]
}

// ProviderDisplayName returns a capitalized provider name for headings.
func ProviderDisplayName(provider string) string {
	switch strings.ToLower(provider) {
	case ProviderGemini:
		return "Gemini"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderOllama:
		return "Ollama"
	default:
		return provider
	}
}

// IsKnownProvider returns true for the providers the factory can build.
func IsKnownProvider(provider string) bool {
	_, ok := defaultModels[strings.ToLower(provider)]
	return ok
}
