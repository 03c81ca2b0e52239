// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Codey is a multi-conversation terminal chat client for Gemini, OpenAI and
// Ollama models.
package main

import (
	"os"

	"github.com/brettapps789/codey/internal/cli"
)

// Set via ldflags at build time.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	os.Exit(cli.Execute())
}
