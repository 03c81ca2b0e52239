// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify sends desktop notifications when a reply arrives in a
// conversation that is not on screen.
package notify

import (
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/util"
)

// AppName titles every notification.
const AppName = "Codey"

// bodyRunes bounds the reply preview shown in the notification body.
const bodyRunes = 80

// SendFunc delivers one notification. beeep.Notify in production.
type SendFunc func(title, message string, icon any) error

// Notifier sends notifications when enabled. Safe for concurrent use.
type Notifier struct {
	enabled atomic.Bool
	send    SendFunc
	log     zerolog.Logger
}

// New returns a Notifier backed by beeep.
func New(enabled bool, log zerolog.Logger) *Notifier {
	return NewWithSender(enabled, log, beeep.Notify)
}

// NewWithSender returns a Notifier that delivers through send.
func NewWithSender(enabled bool, log zerolog.Logger, send SendFunc) *Notifier {
	n := &Notifier{send: send, log: log}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled turns delivery on or off.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// Enabled reports whether notifications are delivered.
func (n *Notifier) Enabled() bool {
	return n != nil && n.enabled.Load()
}

// Send delivers a notification. Disabled notifiers drop it silently.
// Failures are logged and returned.
func (n *Notifier) Send(title, message string) error {
	if !n.Enabled() {
		return nil
	}
	n.log.Debug().Str("title", title).Msg("Sending notification")
	// Empty icon lets beeep pick the platform default.
	if err := n.send(title, message, ""); err != nil {
		n.log.Warn().Err(err).Msg("Failed to send notification")
		return err
	}
	return nil
}

// ReplyReady announces a reply in the conversation titled title.
func (n *Notifier) ReplyReady(title, reply string) error {
	preview := util.TruncateRunes(util.FirstLine(reply), bodyRunes)
	return n.Send(AppName+": "+title, preview)
}
