// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for codey.
//
// Configuration is layered, later layers winning:
//
//  1. Built-in defaults
//  2. ~/.codey/config.toml, or ~/.codey/config.json if no TOML file exists
//  3. .env files in the working directory
//  4. Environment variables (CODEY_*, GEMINI_API_KEY, OPENAI_API_KEY, API_KEY)
//  5. Command-line flags, applied by the cli package
//
// Set CODEY_HOME to move the configuration directory.
//
// # Key Types
//
//   - Config: the complete configuration
//   - ValidationError, ValidateErrors: per-field validation failures
//   - Watcher: reloads a config file when it changes on disk
//
// # Usage
//
//	cfg, err := config.Load()
//	if !cfg.HasCredential() {
//	    // show the missing-credential screen
//	}
//
//	w, err := config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
//	defer w.Close()
package config
