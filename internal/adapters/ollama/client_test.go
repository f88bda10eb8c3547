package ollama_test

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
	"go.jot.dev/jot/internal/adapters/ollama"
	"go.jot.dev/jot/internal/core/domain"
)

func newClient(t *testing.T, baseURL string, timeout time.Duration) *ollama.Client {
	t.Helper()
	return ollama.New(domain.FallbackConfig{
		Enabled:     true,
		BaseURL:     baseURL,
		Model:       "test-model",
		Timeout:     timeout,
		ColdTimeout: timeout,
	})
}

// completionServer answers /api/generate with the given completion string.
func completionServer(t *testing.T, completion string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])
		assert.Equal(t, false, req["stream"])
		assert.Equal(t, "json", req["format"])

		_ = json.NewEncoder(w).Encode(map[string]string{"response": completion})
	}))
}

func TestInterpret_StructuredAnswer(t *testing.T) {
	srv := completionServer(t, `{"title": "Submit report", "datetime": "2026-03-12T15:00:00Z", "tags": ["Work"], "priority": "high"}`)
	defer srv.Close()

	client := newClient(t, srv.URL, time.Second)

	got, err := client.Interpret(context.Background(), "submit report tomorrow at 3pm #work")

	require.NoError(t, err)
	assert.Equal(t, "Submit report", got.Title)
	require.NotNil(t, got.Due)
	assert.Equal(t, time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC), got.Due.UTC())
	assert.Equal(t, []string{"work"}, got.Tags)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.True(t, got.PriorityExplicit)
	assert.Equal(t, domain.TierFallback, got.Tier)
	assert.Equal(t, domain.ConfidenceFull, got.Confidence)
}

func TestInterpret_StripsCodeFence(t *testing.T) {
	srv := completionServer(t, "```json\n{\"title\": \"Call John\", \"datetime\": \"\", \"tags\": [], \"priority\": \"medium\"}\n```")
	defer srv.Close()

	client := newClient(t, srv.URL, time.Second)

	got, err := client.Interpret(context.Background(), "call john")

	require.NoError(t, err)
	assert.Equal(t, "Call John", got.Title)
	assert.Nil(t, got.Due)
}

func TestInterpret_UnknownPriorityDefaultsToMedium(t *testing.T) {
	srv := completionServer(t, `{"title": "x", "datetime": "", "tags": [], "priority": "critical"}`)
	defer srv.Close()

	client := newClient(t, srv.URL, time.Second)

	got, err := client.Interpret(context.Background(), "x")

	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.False(t, got.PriorityExplicit)
}

func TestInterpret_TimeoutMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 30*time.Millisecond)

	_, err := client.Interpret(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFallbackTimeout))
}

func TestInterpret_ServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, time.Second)

	_, err := client.Interpret(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFallbackUnavailable))
}

func TestInterpret_MalformedCompletionMapsToUnavailable(t *testing.T) {
	srv := completionServer(t, "I could not parse that, sorry!")
	defer srv.Close()

	client := newClient(t, srv.URL, time.Second)

	_, err := client.Interpret(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFallbackUnavailable))
}

func TestInterpret_ConnectionRefusedMapsToUnavailable(t *testing.T) {
	client := newClient(t, "http://127.0.0.1:1", time.Second)

	_, err := client.Interpret(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFallbackUnavailable))
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, time.Second)
	assert.True(t, client.Healthy(context.Background()))

	down := newClient(t, "http://127.0.0.1:1", time.Second)
	assert.False(t, down.Healthy(context.Background()))
}

func TestWarm(t *testing.T) {
	srv := completionServer(t, `{"title": "ok", "datetime": "", "tags": [], "priority": "medium"}`)
	defer srv.Close()

	client := newClient(t, srv.URL, time.Second)

	assert.NoError(t, client.Warm(context.Background()))
}
