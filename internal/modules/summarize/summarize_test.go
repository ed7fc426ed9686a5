package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-nlp/inkwell/internal/pipeline"
)

func newInitialized(t *testing.T, baseURL string) *Summarizer {
	t.Helper()
	s := New(nil)
	require.NoError(t, s.Initialize(context.Background(), pipeline.Config{
		"base_url": baseURL,
		"api_key":  "token",
	}))
	return s
}

func longText() string {
	return strings.Repeat("the quick brown fox jumps over the lazy dog ", 10)
}

func TestProcess(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+defaultModel, r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"summary_text": "A fox repeatedly jumps over a dog."}]`))
	}))
	defer srv.Close()

	s := newInitialized(t, srv.URL)
	text := longText()
	result, err := s.Process(context.Background(), text, nil)
	require.NoError(t, err)

	assert.Equal(t, "A fox repeatedly jumps over a dog.", result["summary"])
	assert.Equal(t, len(text), result["original_length"])
	assert.Less(t, result["compression_ratio"].(float64), 1.0)

	params := gotBody["parameters"].(map[string]any)
	assert.EqualValues(t, defaultMaxLen, params["max_length"])
	assert.EqualValues(t, defaultMinLen, params["min_length"])
}

func TestShortTextPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("short text must not hit the inference API")
	}))
	defer srv.Close()

	s := newInitialized(t, srv.URL)
	result, err := s.Process(context.Background(), "too short to bother", nil)
	require.NoError(t, err)

	assert.Equal(t, "too short to bother", result["summary"])
	assert.Equal(t, 1.0, result["compression_ratio"])
}

func TestOptionOverrides(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"summary_text": "brief"}]`))
	}))
	defer srv.Close()

	s := newInitialized(t, srv.URL)
	_, err := s.Process(context.Background(), longText(), pipeline.Options{
		"max_length": 40,
		"min_length": 10,
	})
	require.NoError(t, err)

	params := gotBody["parameters"].(map[string]any)
	assert.EqualValues(t, 40, params["max_length"])
	assert.EqualValues(t, 10, params["min_length"])
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newInitialized(t, srv.URL)
	s.client.Resty.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(time.Millisecond)
	_, err := s.Process(context.Background(), longText(), nil)
	assert.Error(t, err)
}

func TestInitializeRequiresAPIKey(t *testing.T) {
	t.Setenv("HF_API_TOKEN", "")
	s := New(nil)
	err := s.Initialize(context.Background(), pipeline.Config{})
	assert.Error(t, err)
}

func TestProcessUninitialized(t *testing.T) {
	s := New(nil)
	_, err := s.Process(context.Background(), longText(), nil)
	assert.Error(t, err)
}
