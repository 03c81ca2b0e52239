// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud talks to OpenAI-compatible chat completion APIs.
//
// Any endpoint that speaks the OpenAI chat completions protocol works:
// OpenAI itself, OpenRouter, or a self-hosted gateway. The API is stateless,
// so each Session keeps its own message history and replays it on every
// send.
//
// # Key Types
//
//   - Client: llm.Client backed by github.com/openai/openai-go
//   - Session: one conversation's history
//   - APIError: HTTP failure with status and provider message
//
// # Usage
//
//	client, err := cloud.NewClient(cloud.Config{APIKey: key})
//	sess, err := client.NewSession(ctx, "gpt-4o-mini")
//	reply, err := sess.Send(ctx, "Hello")
//
// # Errors
//
// HTTP failures map onto ErrAuthFailed, ErrRateLimited and ErrModelNotFound
// where the status code allows, so callers can use errors.Is.
package cloud
