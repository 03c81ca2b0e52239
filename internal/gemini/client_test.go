// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettapps789/codey/internal/llm"
)

// fakeGemini serves generateContent and records how many contents each
// request carried.
type fakeGemini struct {
	mu       sync.Mutex
	contents []int
	paths    []string
	reply    string
	status   int
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Contents []json.RawMessage `json:"contents"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.contents = append(f.contents, len(body.Contents))
	f.paths = append(f.paths, r.URL.Path)
	status := f.status
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": f.reply}},
			},
			"finishReason": "STOP",
		}},
	})
}

func newTestClient(t *testing.T, fake *fakeGemini) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), Config{APIKey: "  "})
	assert.True(t, errors.Is(err, llm.ErrNotConfigured))
}

func TestSession_SendMultiTurn(t *testing.T) {
	fake := &fakeGemini{reply: "Hi there!"}
	client := newTestClient(t, fake)
	assert.Equal(t, "gemini", client.Provider())

	sess, err := client.NewSession(context.Background(), "gemini-2.5-pro")
	require.NoError(t, err)

	reply, err := sess.Send(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", reply)

	_, err = sess.Send(context.Background(), "And again")
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.contents, 2)
	assert.Equal(t, 1, fake.contents[0])
	assert.Equal(t, 3, fake.contents[1], "second request should replay the first exchange")
	assert.True(t, strings.Contains(fake.paths[0], "gemini-2.5-pro:generateContent"), fake.paths[0])
}

func TestSession_SendFailure(t *testing.T) {
	fake := &fakeGemini{status: http.StatusInternalServerError}
	client := newTestClient(t, fake)

	sess, err := client.NewSession(context.Background(), "")
	require.NoError(t, err)

	_, err = sess.Send(context.Background(), "Hello")
	assert.Error(t, err)
}

func TestSession_EmptyReply(t *testing.T) {
	fake := &fakeGemini{reply: ""}
	client := newTestClient(t, fake)

	sess, err := client.NewSession(context.Background(), "gemini-2.5-flash")
	require.NoError(t, err)

	_, err = sess.Send(context.Background(), "Hello")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
