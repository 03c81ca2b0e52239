// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/brettapps789/codey/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports conversations to JSON format. It always writes the
// complete conversation; metadata options only affect Markdown.
type JSONExporter struct {
	options *Options
}

// jsonDocument is the exported shape: the conversation plus export metadata.
type jsonDocument struct {
	model.Conversation
	Model      string    `json:"model,omitempty"`
	ExportedAt time.Time `json:"exported_at"`
	Generator  string    `json:"generator"`
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a conversation to indented JSON.
func (e *JSONExporter) Export(conv model.Conversation) ([]byte, error) {
	if conv.Messages == nil {
		conv.Messages = []model.Message{}
	}
	doc := jsonDocument{
		Conversation: conv,
		Model:        e.options.Model,
		ExportedAt:   e.options.now().UTC(),
		Generator:    "codey",
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
