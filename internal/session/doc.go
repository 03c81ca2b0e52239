// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session maps conversations to live remote chat sessions.
//
// Each conversation gets exactly one llm.Session, created through the
// registry's client and held until the process exits. The registry is an
// explicit object owned by the coordinator; tests build a fresh one each.
//
// # Key Types
//
//   - Registry: conversation ID to llm.Session map with lazy creation
//
// # Usage
//
//	reg := session.NewRegistry(client, "gemini-2.5-pro")
//	sess, err := reg.Ensure(ctx, conv.ID) // creates on first use
//	sess, ok := reg.Get(conv.ID)          // lookup only
package session
