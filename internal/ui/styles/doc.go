// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the codey TUI.
//
// Colors are Lip Gloss AdaptiveColors, so one palette serves light and dark
// terminals. Theme bundles the styles each screen region uses.
//
// # Usage
//
//	theme := styles.NewTheme("auto")
//	theme.SetSize(width, height)
//	fmt.Println(theme.Header.Render("Codey"))
package styles
