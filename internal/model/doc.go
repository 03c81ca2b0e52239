// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Conversation: titled, append-only sequence of messages with an opaque ID
//   - Message: one immutable turn, authored by the user or the model
//   - Role: message author (user, model)
//   - ModelInfo: display metadata for a known remote model
//
// # Usage
//
//	msg := model.NewUserMessage("Hello")
//	title := model.TitleFromText(msg.Text) // "Hello"
//
//	info := model.LookupModel("gemini-2.5-pro")
//	fmt.Println(info.Name) // "Gemini 2.5 Pro"
package model
