// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/coordinator"
	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/notify"
	"github.com/brettapps789/codey/internal/render"
	"github.com/brettapps789/codey/internal/ui/styles"
)

// Placeholder is shown in the empty input box.
const Placeholder = "Type your message here..."

// Layout constants. The input box is three text lines plus its border.
const (
	headerHeight    = 1
	statusBarHeight = 1
	inputHeight     = 3
	inputBoxHeight  = inputHeight + 2
)

// focusArea is the region receiving keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// Options configures a Model.
type Options struct {
	Coordinator *coordinator.Coordinator
	Theme       *styles.Theme
	Renderer    *render.Renderer
	Notifier    *notify.Notifier
	Logger      zerolog.Logger

	// Provider is the provider ID, used for the empty state title.
	Provider string

	// ConfigMissing blocks every chat operation behind the setup screen.
	// CredentialEnvVar names the variable the user has to set.
	ConfigMissing    bool
	CredentialEnvVar string

	// SidebarWidth is the sidebar's total width in columns.
	SidebarWidth int

	// ExportDir receives ctrl+s exports. Empty means the working directory.
	ExportDir string

	// Context bounds every round trip. It is cancelled at shutdown.
	Context context.Context
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	coord    *coordinator.Coordinator
	theme    *styles.Theme
	renderer *render.Renderer
	notifier *notify.Notifier
	log      zerolog.Logger
	ctx      context.Context

	keys     KeyMap
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	ticking  bool

	focus        focusArea
	cursor       int
	sidebarWidth int

	width  int
	height int

	status    string
	statusErr bool

	provider      string
	configMissing bool
	credentialVar string
	exportDir     string

	// copyText writes to the system clipboard.
	copyText func(string) error
}

// New creates the chat model.
func New(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	sp.Style = theme.Spinner

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sidebarWidth := opts.SidebarWidth
	if sidebarWidth == 0 {
		sidebarWidth = 28
	}

	return Model{
		coord:         opts.Coordinator,
		theme:         theme,
		renderer:      opts.Renderer,
		notifier:      opts.Notifier,
		log:           opts.Logger,
		ctx:           ctx,
		keys:          DefaultKeyMap(),
		input:         ta,
		viewport:      vp,
		spinner:       sp,
		focus:         focusInput,
		sidebarWidth:  sidebarWidth,
		provider:      opts.Provider,
		configMissing: opts.ConfigMissing,
		credentialVar: opts.CredentialEnvVar,
		exportDir:     opts.ExportDir,
		copyText:      clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.configMissing {
		return nil
	}
	return textarea.Blink
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Status returns the transient status line and whether it is an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// SidebarFocused reports whether keys go to the conversation list.
func (m Model) SidebarFocused() bool {
	return m.focus == focusSidebar
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// activeConversation returns the active conversation snapshot.
func (m Model) activeConversation() (model.Conversation, bool) {
	if m.coord == nil {
		return model.Conversation{}, false
	}
	return m.coord.Active()
}

// showSidebar reports whether the sidebar fits next to the transcript.
func (m Model) showSidebar() bool {
	return m.theme.ShowSidebar() && m.width-m.sidebarWidth >= 40
}

// chatWidth is the width of the transcript column.
func (m Model) chatWidth() int {
	w := m.width
	if m.showSidebar() {
		w -= m.sidebarWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}
