// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettapps789/codey/internal/config"
	"github.com/brettapps789/codey/internal/coordinator"
	"github.com/brettapps789/codey/internal/llm/llmtest"
	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/session"
	"github.com/brettapps789/codey/internal/storage"
)

func newTestREPL(t *testing.T, client *llmtest.Client) (*REPL, *bytes.Buffer) {
	t.Helper()
	coord := coordinator.New(storage.NewConversationStore(), session.NewRegistry(client, "gemini-2.5-pro"))
	var out bytes.Buffer
	return NewREPL(context.Background(), coord, &out, nil), &out
}

// =============================================================================
// REPL
// =============================================================================

func TestREPL_SendWithoutConversation(t *testing.T) {
	r, out := newTestREPL(t, llmtest.Static("hi"))

	quit := r.Handle("hello")

	assert.False(t, quit)
	assert.Contains(t, out.String(), "No conversation selected")
	assert.Empty(t, r.coord.Conversations())
}

func TestREPL_RoundTrip(t *testing.T) {
	r, out := newTestREPL(t, llmtest.Static("Hello there"))

	r.Handle("/new")
	r.Handle("What is Go?")

	assert.Contains(t, out.String(), "Model: Hello there")

	conv, ok := r.coord.Active()
	require.True(t, ok)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "What is Go?", conv.Messages[0].Text)
	assert.Equal(t, "What is Go?", conv.Title)
}

func TestREPL_FailedReplyPrintsApology(t *testing.T) {
	r, out := newTestREPL(t, llmtest.Failing(errors.New("boom")))

	r.Handle("/new")
	r.Handle("hello")

	assert.Contains(t, out.String(), model.ApologyText)
	assert.NotContains(t, out.String(), "boom")
}

func TestREPL_ListAndSwitch(t *testing.T) {
	r, out := newTestREPL(t, llmtest.Static("ok"))

	r.Handle("/new")
	r.Handle("first chat")
	r.Handle("/new")
	out.Reset()

	r.Handle("/list")
	listing := out.String()
	if !strings.Contains(listing, "* 1. New Chat") {
		t.Errorf("newest conversation should be first and active, got:\n%s", listing)
	}
	assert.Contains(t, listing, "  2. first chat (2 msgs")

	r.Handle("/switch 2")
	active, ok := r.coord.Active()
	require.True(t, ok)
	assert.Equal(t, "first chat", active.Title)
}

func TestREPL_SwitchOutOfRange(t *testing.T) {
	r, out := newTestREPL(t, llmtest.Static("ok"))
	r.Handle("/new")
	before := r.coord.ActiveID()

	r.Handle("/switch 5")
	r.Handle("/switch x")
	r.Handle("/switch")

	assert.Equal(t, before, r.coord.ActiveID())
	assert.Contains(t, out.String(), "No conversation 5")
	assert.Contains(t, out.String(), "Usage: /switch N")
}

func TestREPL_Export(t *testing.T) {
	r, out := newTestREPL(t, llmtest.Static("pong"))
	r.Handle("/new")
	r.Handle("ping")

	path := filepath.Join(t.TempDir(), "chat.json")
	r.Handle("/export " + path)
	assert.Contains(t, out.String(), "Exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "ping", doc["title"])

	out.Reset()
	r.Handle("/export " + filepath.Join(t.TempDir(), "chat.txt"))
	assert.Contains(t, out.String(), "unsupported export format")
}

func TestREPL_Quit(t *testing.T) {
	r, _ := newTestREPL(t, llmtest.Static("ok"))

	for _, line := range []string{"/quit", "/q", "  /QUIT  "} {
		if !r.Handle(line) {
			t.Errorf("Handle(%q) should quit", line)
		}
	}
	for _, line := range []string{"", "   ", "/help", "/nope", "exit", "quit"} {
		if r.Handle(line) {
			t.Errorf("Handle(%q) should not quit", line)
		}
	}
}

func TestREPL_PlainWordsAreSentVerbatim(t *testing.T) {
	r, _ := newTestREPL(t, llmtest.Static("ok"))
	r.Handle("/new")

	assert.False(t, r.Handle("quit"))
	assert.False(t, r.Handle("  exit  "))

	conv, ok := r.coord.Active()
	require.True(t, ok)
	var sent []string
	for _, msg := range conv.Messages {
		if msg.IsUser() {
			sent = append(sent, msg.Text)
		}
	}
	assert.Equal(t, []string{"quit", "  exit  "}, sent)
}

func TestREPL_UnknownCommand(t *testing.T) {
	r, out := newTestREPL(t, llmtest.Static("ok"))
	r.Handle("/frobnicate")
	assert.Contains(t, out.String(), "Unknown command /frobnicate")
}

// =============================================================================
// COMMANDS
// =============================================================================

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "codey "))
}

func TestConfigInitAndPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CODEY_HOME", home)

	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.toml"), strings.TrimSpace(out))

	_, err = execute(t, "config", "init")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, "config.toml"))
	require.NoError(t, err)

	_, err = execute(t, "config", "init")
	assert.Error(t, err, "init should refuse to overwrite")

	_, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigShowMasksKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codey.toml")
	content := "provider = \"openai\"\nmodel = \"gpt-4o\"\n\n[openai]\napi_key = \"sk-secret-value\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	out, err := execute(t, "--config", path, "config", "show")
	require.NoError(t, err)

	assert.NotContains(t, out, "sk-secret-value")
	assert.Contains(t, out, "REDACTED")
}

func TestLoadConfig_ProviderFlagResetsModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codey.toml")
	require.NoError(t, os.WriteFile(path, []byte("provider = \"gemini\"\nmodel = \"gemini-2.5-pro\"\n"), 0600))
	t.Setenv("CODEY_MODEL", "gemini-2.5-pro")

	cfg, _, err := loadConfig(&rootFlags{configPath: path, provider: "ollama"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, model.DefaultModel("ollama"), cfg.Model)

	cfg, _, err = loadConfig(&rootFlags{configPath: path, provider: "ollama", model: "llama3.2"})
	require.NoError(t, err)
	assert.Equal(t, "llama3.2", cfg.Model)
}

func TestReloadKeepsFlagOverrides(t *testing.T) {
	app := &App{flags: &rootFlags{provider: "ollama", model: "llama3.2", debug: true}}

	fromFile := config.Default()
	fromFile.Model = "gemini-2.5-flash"
	msg := app.reloaded(fromFile, nil)

	require.NoError(t, msg.Err)
	assert.Equal(t, "ollama", msg.Config.Provider)
	assert.Equal(t, "llama3.2", msg.Config.Model)
	assert.Equal(t, "debug", msg.Config.Log.Level)

	msg = app.reloaded(nil, errors.New("bad toml"))
	assert.Nil(t, msg.Config)
	assert.EqualError(t, msg.Err, "bad toml")
}

func TestReloadWithoutFlagsUsesFile(t *testing.T) {
	app := &App{flags: &rootFlags{}}

	fromFile := config.Default()
	fromFile.Model = "gemini-2.5-flash"
	msg := app.reloaded(fromFile, nil)

	require.NoError(t, msg.Err)
	assert.Equal(t, "gemini", msg.Config.Provider)
	assert.Equal(t, "gemini-2.5-flash", msg.Config.Model)
}

func TestLoadConfig_RejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codey.toml")
	require.NoError(t, os.WriteFile(path, []byte("provider = \"gemini\"\n"), 0600))

	_, _, err := loadConfig(&rootFlags{configPath: path, provider: "nope"})
	assert.Error(t, err)
}
