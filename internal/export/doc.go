// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes conversations to Markdown or JSON files.
//
// # Key Types
//
//   - Exporter: converts a conversation to one format
//   - Options: export configuration
//
// # Supported Formats
//
//   - Markdown: human-readable transcript with a YAML front matter block
//   - JSON: the complete conversation, machine-readable
//
// # Usage
//
//	path, err := export.ExportMarkdown(conv, &export.Options{OutputDir: dir})
//
// Pick the format from a file name:
//
//	exp, err := export.ForPath("notes.json", nil)
//	err = export.WriteFile(conv, exp, "notes.json")
package export
