// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package coordinator turns user intents into remote round trips and
// reconciles their results into the conversation store.
//
// A send is split in two. Begin runs on the caller's loop: it validates,
// captures the target conversation ID, appends the user's message and marks
// the conversation pending. Complete may run on any goroutine: it calls the
// remote session and appends the reply, or the fixed apology on failure, to
// the captured conversation. Switching or creating conversations in between
// never redirects a reply.
//
// Pending state is tracked per conversation, so one conversation can wait on
// its reply while another sends.
//
// # Key Types
//
//   - Coordinator: owns the store and the session registry
//   - Request: a begun send, tagged with its conversation ID
//   - Reply: the reconciled outcome of a Request
//
// # Usage
//
//	coord := coordinator.New(store, registry, coordinator.WithLogger(log))
//	conv, err := coord.NewChat(ctx)
//
//	req, err := coord.Begin("Hello")
//	if err != nil {
//	    // ErrEmptyMessage, ErrNoActiveConversation or ErrConversationBusy
//	}
//	reply := coord.Complete(ctx, req)
package coordinator
