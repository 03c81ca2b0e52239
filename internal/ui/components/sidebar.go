// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/ui/styles"
	"github.com/brettapps789/codey/internal/util"
)

// =============================================================================
// SIDEBAR
// =============================================================================

// SidebarItem is one row of the conversation list.
type SidebarItem struct {
	Conversation model.Conversation
	Active       bool
	Pending      bool
}

// Sidebar renders the conversation list, newest first.
type Sidebar struct {
	Items   []SidebarItem
	Cursor  int
	Focused bool
	Width   int
	Height  int

	// Now is used for relative times. Defaults to time.Now.
	Now func() time.Time

	theme *styles.Theme
}

// NewSidebar creates an empty sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme, Width: 28, Now: time.Now}
}

// View renders the sidebar box.
func (s *Sidebar) View() string {
	// Border and padding take four columns.
	inner := s.Width - 4
	if inner < 8 {
		inner = 8
	}

	var sb strings.Builder
	sb.WriteString(s.theme.SidebarHeading.Render("Conversations"))
	sb.WriteString("\n")

	if len(s.Items) == 0 {
		sb.WriteString(s.theme.SessionMeta.Render("No conversations"))
	}

	for i, item := range s.Items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.renderItem(i, item, inner))
	}

	box := s.theme.Sidebar
	if s.Focused {
		box = s.theme.SidebarFocused
	}
	box = box.Width(s.Width - 2)
	if s.Height > 2 {
		box = box.Height(s.Height - 2)
	}
	return box.Render(sb.String())
}

func (s *Sidebar) renderItem(i int, item SidebarItem, width int) string {
	marker := "  "
	if item.Active {
		marker = "> "
	}
	avail := width - runewidth.StringWidth(marker)
	row := marker + util.PadRight(util.TruncateWidth(item.Conversation.Title, avail), avail)

	var line string
	switch {
	case s.Focused && i == s.Cursor:
		line = s.theme.SessionSelected.Render(row)
	case item.Active:
		line = s.theme.SessionActive.Render(row)
	default:
		line = s.theme.SessionItem.Render(row)
	}

	meta := "  " + s.metaText(item)
	if item.Pending {
		return line + "\n" + s.theme.SessionPending.Render(meta)
	}
	return line + "\n" + s.theme.SessionMeta.Render(meta)
}

func (s *Sidebar) metaText(item SidebarItem) string {
	if item.Pending {
		return "typing..."
	}
	n := len(item.Conversation.Messages)
	when := humanize.RelTime(item.Conversation.CreatedAt, s.now(), "ago", "from now")
	if n == 0 {
		return when
	}
	return humanize.Comma(int64(n)) + " msgs, " + when
}

func (s *Sidebar) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ClampCursor keeps the cursor inside the item list.
func (s *Sidebar) ClampCursor() {
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}
