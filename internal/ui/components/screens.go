// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/brettapps789/codey/internal/ui/styles"
)

// EmptyState is shown when there is no active conversation.
func EmptyState(theme *styles.Theme, providerName string, width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.EmptyTitle.Render(providerName+" Chat"),
		theme.EmptyHint.Render("Press ctrl+n to start a new conversation."),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// ConfigMissing replaces the whole UI when no credential is configured.
func ConfigMissing(theme *styles.Theme, envVar string, width, height int) string {
	content := theme.ErrorBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.ErrorTitle.Render("API Key Not Found"),
		theme.ErrorMessage.Render("Please make sure the "+envVar+" environment variable is set."),
		"",
		theme.EmptyHint.Render("Press ctrl+c to quit."),
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
