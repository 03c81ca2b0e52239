// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/peterh/liner"

	"github.com/brettapps789/codey/internal/config"
	"github.com/brettapps789/codey/internal/coordinator"
	"github.com/brettapps789/codey/internal/export"
	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/render"
)

// historyFileName lives in the config directory.
const historyFileName = "history"

// replHelp is printed by /help.
const replHelp = `Commands:
  /new           Start a new conversation
  /list          List conversations
  /switch N      Switch to conversation N
  /export PATH   Export the active conversation (.md or .json)
  /help          Show this help
  /quit          Exit

Anything else is sent to the model.
`

// =============================================================================
// REPL
// =============================================================================

// REPL is the line-oriented chat used when stdout is not a terminal or
// --plain is given.
type REPL struct {
	ctx      context.Context
	coord    *coordinator.Coordinator
	out      io.Writer
	renderer *render.Renderer
	model    string
}

// NewREPL creates a REPL writing to out. A nil renderer prints replies as
// plain text.
func NewREPL(ctx context.Context, coord *coordinator.Coordinator, out io.Writer, renderer *render.Renderer) *REPL {
	return &REPL{
		ctx:      ctx,
		coord:    coord,
		out:      out,
		renderer: renderer,
		model:    coord.Sessions().Model(),
	}
}

// Handle processes one input line. It returns true when the user asked to
// quit.
func (r *REPL) Handle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	// Only slash lines are commands; everything else goes to the model
	// exactly as typed.
	if !strings.HasPrefix(trimmed, "/") {
		r.send(line)
		return false
	}

	parts := strings.Fields(trimmed)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true
	case "/help", "/h", "/?":
		fmt.Fprint(r.out, replHelp)
	case "/new":
		r.newChat()
	case "/list", "/ls":
		r.list()
	case "/switch":
		r.switchTo(args)
	case "/export":
		r.export(strings.TrimSpace(strings.TrimPrefix(trimmed, parts[0])))
	default:
		fmt.Fprintf(r.out, "Unknown command %s. Type /help for commands.\n", parts[0])
	}
	return false
}

func (r *REPL) send(text string) {
	reply, err := r.coord.SendMessage(r.ctx, text)
	if err != nil {
		switch {
		case errors.Is(err, coordinator.ErrNoActiveConversation):
			fmt.Fprintln(r.out, "No conversation selected. Type /new to start one.")
		default:
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
		return
	}

	text = reply.Message.Text
	if !reply.Failed() && r.renderer != nil {
		text = r.renderer.Markdown(text)
	}
	fmt.Fprintf(r.out, "%s: %s\n\n", model.RoleModel.DisplayName(), text)
}

func (r *REPL) newChat() {
	conv, err := r.coord.NewChat(r.ctx)
	if err != nil {
		fmt.Fprintf(r.out, "Started conversation %d, but its session could not be opened: %v\n", r.position(conv.ID), err)
		return
	}
	fmt.Fprintf(r.out, "Started conversation %d (%s).\n", r.position(conv.ID), r.model)
}

// position returns the 1-based list number of conversationID.
func (r *REPL) position(conversationID string) int {
	for i, conv := range r.coord.Conversations() {
		if conv.ID == conversationID {
			return i + 1
		}
	}
	return 0
}

func (r *REPL) list() {
	convs := r.coord.Conversations()
	if len(convs) == 0 {
		fmt.Fprintln(r.out, "No conversations. Type /new to start one.")
		return
	}
	active := r.coord.ActiveID()
	for i, conv := range convs {
		marker := " "
		if conv.ID == active {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %d. %s (%d msgs, %s)\n",
			marker, i+1, conv.Title, len(conv.Messages), humanize.Time(conv.CreatedAt))
	}
}

func (r *REPL) switchTo(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "Usage: /switch N")
		return
	}
	n, err := strconv.Atoi(args[0])
	convs := r.coord.Conversations()
	if err != nil || n < 1 || n > len(convs) {
		fmt.Fprintf(r.out, "No conversation %s. Type /list to see them.\n", args[0])
		return
	}
	conv := convs[n-1]
	r.coord.Select(conv.ID)
	fmt.Fprintf(r.out, "Switched to %d. %s\n", n, conv.Title)
}

func (r *REPL) export(path string) {
	if path == "" {
		fmt.Fprintln(r.out, "Usage: /export PATH")
		return
	}
	conv, ok := r.coord.Active()
	if !ok {
		fmt.Fprintln(r.out, "No conversation selected. Type /new to start one.")
		return
	}

	opts := export.DefaultOptions()
	opts.Model = r.model
	exporter, err := export.ForPath(path, opts)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if err := export.WriteFile(conv, exporter, path); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "Exported to %s\n", path)
}

// =============================================================================
// LINE EDITING
// =============================================================================

// runREPL reads lines with liner until the user quits or input ends.
func runREPL(ctx context.Context, app *App, out io.Writer) error {
	if app.ConfigMissing {
		fmt.Fprintln(out, "API Key Not Found")
		fmt.Fprintf(out, "Please make sure the %s environment variable is set.\n", app.Config.CredentialEnvVar())
		return fmt.Errorf("missing credential: %s is not set", app.Config.CredentialEnvVar())
	}

	var renderer *render.Renderer
	if IsStdoutTTY() {
		if rr, err := render.New(app.Config.UI.Theme, GetTerminalWidth()); err == nil {
			renderer = rr
		}
	}

	repl := NewREPL(ctx, app.Coord, out, renderer)
	fmt.Fprintf(out, "%s Chat (%s). Type /help for commands.\n",
		model.ProviderDisplayName(app.Config.Provider), app.Config.Model)
	repl.newChat()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := loadHistory(line)
	defer saveHistory(line, historyFile)

	for {
		if ctx.Err() != nil {
			return nil
		}
		input, err := line.Prompt("> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if repl.Handle(input) {
			return nil
		}
	}
}

func loadHistory(line *liner.State) string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, historyFileName)
	if f, err := os.Open(path); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return path
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
