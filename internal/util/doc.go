// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across codey.
//
// # Key Functions
//
// Text:
//   - TruncateRunes: cut a string to N runes and append an ellipsis when cut
//   - TruncateWidth: cut a string to N terminal columns (wide runes count twice)
//   - PadRight: pad a string with spaces to an exact column width
//
// Files:
//   - AtomicWriteFile: crash-safe write through a temp file, fsync and rename
//
// # Usage
//
//	title := util.TruncateRunes(firstMessage, 30)
//	cell := util.PadRight(util.TruncateWidth(title, 24), 24)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
