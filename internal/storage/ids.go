// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage holds the in-memory conversation store for codey.
package storage

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// ConversationIDPrefix starts every generated conversation ID.
const ConversationIDPrefix = "conv-"

// IDGenerator produces conversation IDs that are unique for the process
// lifetime.
type IDGenerator interface {
	NextID() string
}

// SnowflakeIDs generates "conv-<snowflake>" IDs. Snowflakes embed a
// millisecond timestamp and a sequence number, so IDs never repeat and sort
// by creation time.
type SnowflakeIDs struct {
	node *snowflake.Node
}

// NewSnowflakeIDs creates a generator for the given node number (0-1023).
func NewSnowflakeIDs(nodeID int64) (*SnowflakeIDs, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &SnowflakeIDs{node: node}, nil
}

// NextID returns a fresh conversation ID.
func (g *SnowflakeIDs) NextID() string {
	return ConversationIDPrefix + g.node.Generate().String()
}

// defaultIDs uses node 1, which is always within range.
func defaultIDs() IDGenerator {
	g, err := NewSnowflakeIDs(1)
	if err != nil {
		panic(err)
	}
	return g
}
