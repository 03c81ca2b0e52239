// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the codey TUI.
//
// The screen has three regions: the conversation sidebar, the transcript of
// the active conversation, and the input box. The model never writes
// conversations itself. It reads them from the coordinator on every render
// and hands user intents (new chat, select, send) back to it.
//
// Sends are split in two. Begin runs on the event loop, so the user's
// message shows up at once. Complete runs in a tea.Cmd and reports back
// with a ReplyMsg carrying the conversation the send was started from.
//
// # Key Bindings
//
//   - ctrl+n: new conversation
//   - enter: send (or open the highlighted conversation)
//   - alt+enter, ctrl+j: newline
//   - tab: move focus between sidebar and input
//   - ctrl+y: copy the last reply
//   - ctrl+s: export the conversation to Markdown
//   - ctrl+c: quit
package chat
