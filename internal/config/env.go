// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for codey.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFiles are loaded, when present, before environment overrides apply.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads EnvFiles into the process environment. Values in the
// files win over variables already set, so a project .env can pin a model.
func LoadEnvFiles() {
	for _, path := range EnvFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Overload(path); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
		}
	}
}

// ApplyEnvOverrides applies environment variables on top of cfg.
//
// Supported environment variables:
//   - CODEY_PROVIDER, CODEY_MODEL, CODEY_SYSTEM_PROMPT
//   - GEMINI_API_KEY, GEMINI_BASE_URL
//   - OPENAI_API_KEY, OPENAI_BASE_URL
//   - CODEY_OLLAMA_URL
//   - CODEY_REQUEST_TIMEOUT, CODEY_RATE_LIMIT, CODEY_RATE_BURST
//   - CODEY_THEME, CODEY_NOTIFICATIONS, CODEY_EXPORT_DIR
//   - CODEY_LOG_LEVEL, CODEY_LOG_FILE, CODEY_LOG_FORMAT
//   - API_KEY: fallback credential for the selected provider
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if key := os.Getenv("API_KEY"); key != "" {
		switch c.Provider {
		case "gemini", "":
			if c.Gemini.APIKey == "" {
				c.Gemini.APIKey = key
			}
		case "openai":
			if c.OpenAI.APIKey == "" {
				c.OpenAI.APIKey = key
			}
		}
	}
	return nil
}
