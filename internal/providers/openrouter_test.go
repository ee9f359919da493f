package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ragbot/internal/models"

	"github.com/stretchr/testify/require"
)

func TestOpenRouterComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"привет"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenRouterProvider("test-key", srv.URL, "x-ai/grok-4-fast:free", 1024)
	out, err := p.Complete(context.Background(), []models.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	require.Equal(t, "привет", out)
}

func TestOpenRouterCompleteEmptyChoicesIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenRouterProvider("test-key", srv.URL, "m", 0)
	_, err := p.Complete(context.Background(), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedResponse))
}

func TestOpenRouterCompleteHTTPErrorIsNotMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewOpenRouterProvider("test-key", srv.URL, "m", 0)
	_, err := p.Complete(context.Background(), nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrMalformedResponse))
}

func TestMockProviderDeterministicEmbedding(t *testing.T) {
	m := NewMockProvider(32)
	a, err := m.Embed(context.Background(), []string{"один", "два"})
	require.NoError(t, err)
	b, err := m.Embed(context.Background(), []string{"один", "два"})
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 2)
	require.Len(t, a[0], 32)
	require.NotEqual(t, a[0], a[1])
}
