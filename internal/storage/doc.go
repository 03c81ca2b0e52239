// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage holds the in-memory conversation store for codey.
//
// Conversations live for the lifetime of the process. The store owns their
// order (newest first), the active selection, and the one-time title rule
// applied when the first successful reply arrives.
//
// # Key Types
//
//   - ConversationStore: mutex-protected list of conversations plus the active ID
//   - IDGenerator: source of unique conversation IDs
//   - SnowflakeIDs: default IDGenerator, monotonic and timestamp-based
//
// # Usage
//
//	store := storage.NewConversationStore()
//	conv := store.Create()               // inserted first, now active
//	store.Append(conv.ID, model.NewUserMessage("Hello"))
//	active, ok := store.Active()
//
// All reads return copies, so callers can hand them to renderers freely.
package storage
