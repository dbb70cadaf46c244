package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Ask(t *testing.T) {
	var captured agentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"event":"text","data":{"text":"SUP004 leads on rating."}}]`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second)

	ex, err := client.Ask(context.Background(), "Best supplier?", "procurement")
	require.NoError(t, err)
	assert.Equal(t, "SUP004 leads on rating.", ex.Response)
	assert.Equal(t, "Best supplier?", ex.Question)
	assert.False(t, ex.Simulated)

	// Context tag is folded into the user content, not a separate field.
	require.Len(t, captured.Messages, 1)
	require.Len(t, captured.Messages[0].Content, 1)
	assert.Equal(t, "[Context: procurement]\n\nBest supplier?", captured.Messages[0].Content[0].Text)
	assert.False(t, captured.Stream)
}

func TestHTTPClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent not deployed", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second)

	_, err := client.Ask(context.Background(), "anything", "")
	var semantic *SemanticError
	require.True(t, errors.As(err, &semantic))
	assert.Contains(t, semantic.Message, "502")
}

func TestHTTPClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewHTTPClient(srv.URL, time.Second)

	_, err := client.Ask(context.Background(), "anything", "")
	var transport *TransportError
	require.True(t, errors.As(err, &transport))
}

func TestHTTPClient_ErrorEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"event":"error","data":{"message":"quota exceeded"}}]`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second)

	_, err := client.Ask(context.Background(), "anything", "")
	var semantic *SemanticError
	require.True(t, errors.As(err, &semantic))
	assert.Equal(t, "quota exceeded", semantic.Message)
}
