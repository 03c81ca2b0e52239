// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm defines the contract codey uses to talk to a remote model.
//
// A Client opens one Session per conversation. A Session is stateful: it
// carries the multi-turn context on the provider side (or in memory for
// providers without server-side chats) and answers one message at a time.
//
// # Key Types
//
//   - Client: opens sessions for a model ID
//   - Session: sends a message and returns the full reply text
//   - RateLimitedClient: Client wrapper that paces sends with x/time/rate
//
// # Usage
//
//	sess, err := client.NewSession(ctx, "gemini-2.5-pro")
//	reply, err := sess.Send(ctx, "Hello")
//
// Implementations live in the gemini, cloud and ollama packages.
package llm
