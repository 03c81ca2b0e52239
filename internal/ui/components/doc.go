// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the codey TUI.
//
// Components are plain renderers: they take data and a theme and return a
// string. State lives in the chat model.
//
// # Components
//
//   - MessageBubble: one message in the transcript
//   - Sidebar: the conversation list
//   - StatusBar: shortcuts and transient status
//   - EmptyState, ConfigMissing: full screen states
package components
