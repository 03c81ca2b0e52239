// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	provider   string
	model      string
	plain      bool
	debug      bool
}

// NewRootCommand builds the codey command tree.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "codey",
		Short: "Chat with Gemini, OpenAI or Ollama models from the terminal",
		Long: `Codey is a terminal chat client that keeps several conversations open at
once. Each conversation has its own model session, and a reply always lands in
the conversation it was sent from, even if you switch away while waiting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.codey/config.toml)")
	pf.StringVar(&flags.provider, "provider", "", "model provider: gemini, openai or ollama")
	pf.StringVar(&flags.model, "model", "", "model ID for new conversations")
	pf.BoolVar(&flags.plain, "plain", false, "use the line-oriented REPL instead of the TUI")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.Version = Version
	root.SetVersionTemplate(versionString() + "\n")

	root.AddCommand(newVersionCommand())
	root.AddCommand(newConfigCommand(flags))
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runChat(ctx context.Context, flags *rootFlags, out io.Writer) error {
	app, err := newApp(ctx, flags)
	if err != nil {
		return err
	}
	defer app.Close()

	if flags.plain || !CanRunTUI() {
		return runREPL(ctx, app, out)
	}
	return runTUI(ctx, app)
}
