// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package coordinator turns user intents into remote round trips.
package coordinator

import (
	"sync"
	"time"
)

// pendingSet records which conversations have an outstanding round trip.
type pendingSet struct {
	mu    sync.Mutex
	since map[string]time.Time
}

func newPendingSet() *pendingSet {
	return &pendingSet{since: make(map[string]time.Time)}
}

// tryMark marks id pending. It returns false if id was already pending.
func (p *pendingSet) tryMark(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.since[id]; ok {
		return false
	}
	p.since[id] = time.Now()
	return true
}

func (p *pendingSet) clear(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.since, id)
}

func (p *pendingSet) has(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.since[id]
	return ok
}

// startedAt returns when id became pending.
func (p *pendingSet) startedAt(id string) (time.Time, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.since[id]
	return t, ok
}

func (p *pendingSet) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.since)
}
