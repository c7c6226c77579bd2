package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doc-assist/docassist-cli/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	s := NewLLMService(LLMConfig{})
	assert.Equal(t, DefaultLLMModel, s.ModelName())
}

func TestGenerate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(generateResponse{Response: "generated text", Done: true})
	}))
	defer srv.Close()

	s := NewLLMService(LLMConfig{BaseURL: srv.URL, Model: "test-llm"})

	out, err := s.Generate(context.Background(), "a prompt", driven.GenerateOptions{
		MaxTokens:   64,
		Temperature: 0.3,
		Seed:        42,
	})
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)
	assert.Equal(t, "test-llm", got.Model)
	assert.Equal(t, "a prompt", got.Prompt)
	assert.False(t, got.Stream)
	require.NotNil(t, got.Options)
	assert.Equal(t, 64, got.Options.NumPredict)
	assert.InDelta(t, 0.3, got.Options.Temperature, 1e-9)
	assert.Equal(t, 42, got.Options.Seed)
}

func TestGenerate_NoOptions(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(generateResponse{Response: "ok"})
	}))
	defer srv.Close()

	s := NewLLMService(LLMConfig{BaseURL: srv.URL})

	_, err := s.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Nil(t, got.Options)
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewLLMService(LLMConfig{BaseURL: srv.URL})

	_, err := s.Generate(context.Background(), "p", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestChat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "chat reply"},
			Done:    true,
		})
	}))
	defer srv.Close()

	s := NewLLMService(LLMConfig{BaseURL: srv.URL})

	out, err := s.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hello"},
	}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "chat reply", out)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestPull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pull", r.URL.Path)

		var req pullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-llm", req.Name)

		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	s := NewLLMService(LLMConfig{BaseURL: srv.URL, Model: "test-llm"})
	require.NoError(t, s.Pull(context.Background()))
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	s := NewLLMService(LLMConfig{BaseURL: srv.URL})
	assert.NoError(t, s.Ping(context.Background()))
}
