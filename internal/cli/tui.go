// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brettapps789/codey/internal/config"
	"github.com/brettapps789/codey/internal/notify"
	"github.com/brettapps789/codey/internal/render"
	"github.com/brettapps789/codey/internal/ui/chat"
	"github.com/brettapps789/codey/internal/ui/styles"
)

// runTUI starts the full-screen interface and blocks until it exits.
func runTUI(ctx context.Context, app *App) error {
	cfg := app.Config

	theme := styles.NewTheme(cfg.UI.Theme)
	renderer, err := render.New(theme.Name, GetTerminalWidth())
	if err != nil {
		// Replies fall back to plain text.
		app.Log.Warn().Err(err).Msg("Markdown renderer unavailable")
		renderer = nil
	}

	m := chat.New(chat.Options{
		Coordinator:      app.Coord,
		Theme:            theme,
		Renderer:         renderer,
		Notifier:         notify.New(cfg.UI.Notifications, app.Log),
		Logger:           app.Log,
		Provider:         cfg.Provider,
		ConfigMissing:    app.ConfigMissing,
		CredentialEnvVar: cfg.CredentialEnvVar(),
		SidebarWidth:     cfg.UI.SidebarWidth,
		ExportDir:        cfg.UI.ExportDir,
		Context:          ctx,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Watching is best effort; a missing config directory just means no
	// live reload.
	if app.ConfigPath != "" {
		w, err := config.Watch(ctx, app.ConfigPath, func(c *config.Config, err error) {
			p.Send(app.reloaded(c, err))
		})
		if err != nil {
			app.Log.Warn().Err(err).Str("path", app.ConfigPath).Msg("Config watch disabled")
		} else {
			defer w.Close()
		}
	}

	_, err = p.Run()
	return err
}

// reloaded turns a watcher event into the message the chat model applies,
// with the command-line overrides laid over the new file contents.
func (a *App) reloaded(cfg *config.Config, err error) chat.ConfigReloadedMsg {
	if err == nil && a.flags != nil {
		err = applyFlags(cfg, a.flags)
	}
	if err != nil {
		return chat.ConfigReloadedMsg{Err: err}
	}
	return chat.ConfigReloadedMsg{Config: cfg}
}
