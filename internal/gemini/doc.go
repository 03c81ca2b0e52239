// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini adapts the Google Gen AI SDK chat API to llm.Client.
//
// Gemini chats are stateful on the SDK side: each Session wraps a
// *genai.Chat that records turns as they succeed, so multi-turn context is
// handled by the SDK.
//
// # Usage
//
//	client, err := gemini.NewClient(ctx, gemini.Config{APIKey: key})
//	if errors.Is(err, llm.ErrNotConfigured) {
//	    // render the missing-credential screen
//	}
//	sess, _ := client.NewSession(ctx, "gemini-2.5-pro")
//	reply, err := sess.Send(ctx, "Hello")
package gemini
