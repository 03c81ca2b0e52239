// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the codey command line.
//
// Running codey with no subcommand starts the TUI when stdout is a
// terminal, or a line-oriented REPL otherwise (or with --plain).
//
// # Commands
//
//   - codey: chat (TUI or REPL)
//   - codey version: print version information
//   - codey config path|show|init: inspect or create the config file
//
// # REPL Commands
//
//   - /new: start a conversation
//   - /list: list conversations, newest first
//   - /switch N: make conversation N active
//   - /export PATH: write the active conversation to .md or .json
//   - /help: show commands
//   - /quit: exit
package cli
