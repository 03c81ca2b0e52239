// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns model replies (markdown) into styled terminal text.
//
// Rendering is cached per (width, text) since the chat view re-renders the
// whole transcript on every frame.
package render

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of rendered messages kept.
const DefaultCacheSize = 256

// MinWidth is the narrowest wrap width the renderer accepts.
const MinWidth = 20

// Renderer renders markdown with glamour. Safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	style string
	width int
	term  *glamour.TermRenderer
	cache *lru.Cache
}

// New creates a renderer for theme (auto, dark or light) wrapping at width.
func New(theme string, width int) (*Renderer, error) {
	cache, err := lru.New(DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	r := &Renderer{style: styleFor(theme), cache: cache}
	if err := r.SetWidth(width); err != nil {
		return nil, err
	}
	return r, nil
}

func styleFor(theme string) string {
	switch strings.ToLower(theme) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	default:
		return "auto"
	}
}

// SetWidth rebuilds the renderer for a new wrap width. The cache is purged
// since every entry was wrapped for the old width.
func (r *Renderer) SetWidth(width int) error {
	if width < MinWidth {
		width = MinWidth
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term != nil && width == r.width {
		return nil
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if r.style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.style))
	}

	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	r.term = term
	r.width = width
	r.cache.Purge()
	return nil
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

// Markdown renders text. It returns text unchanged if rendering fails.
func (r *Renderer) Markdown(text string) string {
	if r == nil {
		return text
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strconv.Itoa(r.width) + "\x00" + text
	if v, ok := r.cache.Get(key); ok {
		return v.(string)
	}

	out, err := r.term.Render(text)
	if err != nil {
		return text
	}
	out = strings.Trim(out, "\n")
	r.cache.Add(key, out)
	return out
}

// CacheLen reports how many rendered entries are cached.
func (r *Renderer) CacheLen() int {
	return r.cache.Len()
}
