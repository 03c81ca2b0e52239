// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brettapps789/codey/internal/export"
)

var errNothingToExport = errors.New("no conversation selected")

// exportCmd writes the active conversation to Markdown in the export
// directory. The snapshot is taken now, so later replies are not included.
func (m Model) exportCmd() tea.Cmd {
	conv, ok := m.activeConversation()
	if !ok {
		return func() tea.Msg { return ExportedMsg{Err: errNothingToExport} }
	}

	opts := export.DefaultOptions()
	if m.exportDir != "" {
		opts.OutputDir = m.exportDir
	}
	opts.Model = m.coord.Sessions().Model()

	return func() tea.Msg {
		path, err := export.ExportMarkdown(conv, opts)
		return ExportedMsg{Path: path, Err: err}
	}
}
