// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/brettapps789/codey/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar shows the model name, a transient status line and key hints.
type StatusBar struct {
	Model   string
	Status  string
	IsError bool
	Width   int
	Keys    []key.Binding

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// View renders the bar on one line, dropping hints that do not fit.
func (s *StatusBar) View() string {
	style := s.theme.StatusBar
	left := s.Model
	if s.Status != "" {
		left = s.Status
		if s.IsError {
			style = s.theme.StatusError
		}
	}

	// Padding takes two columns.
	avail := s.Width - 2 - runewidth.StringWidth(left)

	var hints []string
	used := 0
	for _, k := range s.Keys {
		h := k.Help()
		if h.Key == "" {
			continue
		}
		w := runewidth.StringWidth(h.Key) + 1 + runewidth.StringWidth(h.Desc) + 2
		if used+w > avail {
			break
		}
		used += w
		hints = append(hints, s.theme.ShortcutKey.Render(h.Key)+" "+s.theme.ShortcutDesc.Render(h.Desc))
	}

	right := strings.Join(hints, "  ")
	gap := s.Width - 2 - runewidth.StringWidth(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return style.Width(s.Width).Render(left + strings.Repeat(" ", gap) + right)
}
