// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/config"
	"github.com/brettapps789/codey/internal/coordinator"
	"github.com/brettapps789/codey/internal/llm"
	"github.com/brettapps789/codey/internal/logging"
	"github.com/brettapps789/codey/internal/provider"
	"github.com/brettapps789/codey/internal/session"
	"github.com/brettapps789/codey/internal/storage"
)

// App is the wiring shared by the TUI and the REPL.
type App struct {
	Config     *config.Config
	ConfigPath string
	Log        zerolog.Logger
	Coord      *coordinator.Coordinator

	flags *rootFlags

	// ConfigMissing is set when the provider has no credential. No chat
	// operation may run in that state.
	ConfigMissing bool

	logCloser io.Closer
}

// Close flushes the log file.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

// loadConfig reads the config file named by --config, or the default one,
// then applies command-line overrides.
func loadConfig(flags *rootFlags) (*config.Config, string, error) {
	config.LoadEnvFiles()

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if flags.configPath != "" {
		path = flags.configPath
		cfg, err = config.LoadFromPath(path)
	} else {
		if path, err = config.ActivePath(); err != nil {
			return nil, "", err
		}
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if err := applyFlags(cfg, flags); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyFlags lays command-line overrides over cfg. It runs at startup and
// again on every config reload so the flags keep winning over the file.
func applyFlags(cfg *config.Config, flags *rootFlags) error {
	if flags.provider != "" && !strings.EqualFold(flags.provider, cfg.Provider) {
		cfg.Provider = flags.provider
		// The configured model belongs to the old provider.
		cfg.Model = ""
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.debug {
		cfg.Log.Level = "debug"
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// newApp loads configuration and builds the coordinator.
func newApp(ctx context.Context, flags *rootFlags) (*App, error) {
	cfg, path, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	log, closer, err := logging.New(cfg.Log, flags.debug)
	if err != nil {
		// Logging is diagnostic; run without it rather than refuse to start.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		log = zerolog.Nop()
	}

	app := &App{
		Config:     cfg,
		ConfigPath: path,
		flags:      flags,
		Log:        log,
		logCloser:  closer,
	}

	client, err := provider.New(ctx, cfg, log)
	switch {
	case llm.IsNotConfigured(err):
		log.Warn().Str("provider", cfg.Provider).Msg("No credential configured")
		app.ConfigMissing = true
		client = nil
	case err != nil:
		app.Close()
		return nil, err
	}

	store := storage.NewConversationStore()
	registry := session.NewRegistry(client, cfg.Model)
	app.Coord = coordinator.New(store, registry,
		coordinator.WithLogger(log),
		coordinator.WithRequestTimeout(cfg.Request.Timeout),
	)

	log.Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Str("config", path).
		Msg("Starting codey")
	return app, nil
}
