// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for a local Ollama server.
//
// Ollama's /api/chat endpoint is stateless, so each Session keeps the
// conversation history and replays it with every request. Requests are
// non-streaming: one POST, one complete reply.
//
// # Key Types
//
//   - Client: llm.Client over resty with health check and chat
//   - Session: one conversation's history
//   - ClientError: typed failure (not running, timeout, model not found)
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{BaseURL: url})
//	if err := client.CheckRunning(ctx); err != nil {
//	    // show setup hint
//	}
//	sess, _ := client.NewSession(ctx, "llama3.2")
//	reply, err := sess.Send(ctx, "Hello")
package ollama
