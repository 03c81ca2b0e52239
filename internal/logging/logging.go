// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zerolog logger used across codey.
//
// The terminal belongs to the UI, so logs go to a file
// (~/.codey/codey.log by default) and never to stdout.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/config"
)

// FileName is the log file created inside the config directory.
const FileName = "codey.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New opens the configured log file and returns a logger writing to it.
// debug forces the debug level. The returned closer flushes and closes the
// file.
func New(cfg config.LogConfig, debug bool) (zerolog.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		path = filepath.Join(dir, FileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := NewWithWriter(f, cfg.Level, cfg.Format, debug)
	if err != nil {
		f.Close()
		return zerolog.Nop(), nopCloser{}, err
	}
	return logger, f, nil
}

// NewWithWriter builds a logger on w. format is json or console.
func NewWithWriter(w io.Writer, level, format string, debug bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if debug {
		lvl = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	switch strings.ToLower(format) {
	case "json", "":
		logger = zerolog.New(w)
	case "console":
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		})
	default:
		return zerolog.Nop(), errors.New("unsupported log format")
	}

	return logger.With().Timestamp().Str("app", "codey").Logger().Level(lvl), nil
}

// ParseLevel accepts zerolog level names in any case. Empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}
