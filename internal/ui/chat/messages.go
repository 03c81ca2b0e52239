// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/brettapps789/codey/internal/config"
	"github.com/brettapps789/codey/internal/coordinator"
)

// ReplyMsg reports a finished round trip. The coordinator has already
// appended the reply to Reply.ConversationID.
type ReplyMsg struct {
	Reply coordinator.Reply
}

// ConfigReloadedMsg carries a configuration reloaded from disk, or the
// error that stopped it from loading.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ExportedMsg reports the result of an export.
type ExportedMsg struct {
	Path string
	Err  error
}

// notifiedMsg is returned by the background notification command.
type notifiedMsg struct{}
