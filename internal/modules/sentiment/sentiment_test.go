package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-nlp/inkwell/internal/pipeline"
)

func newLexicon(t *testing.T) *Analyzer {
	t.Helper()
	a := New(nil)
	require.NoError(t, a.Initialize(context.Background(), pipeline.Config{}))
	return a
}

func TestLexiconLabels(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"positive", "what a wonderful and amazing day, I love it", "positive"},
		{"negative", "this is terrible, I hate everything about it", "negative"},
		{"neutral", "the report covers the second quarter", "neutral"},
		{"negation flips polarity", "this is not good at all", "negative"},
		{"booster amplifies", "this is really great", "positive"},
		{"empty input", "", "neutral"},
	}

	a := newLexicon(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.Process(context.Background(), tt.text, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result["sentiment"], "text: %q", tt.text)
		})
	}
}

func TestLexiconScoreShape(t *testing.T) {
	a := newLexicon(t)
	result, err := a.Process(context.Background(), "great food, awful service", nil)
	require.NoError(t, err)

	scores := result["scores"].(map[string]float64)
	assert.Contains(t, scores, "compound")
	assert.InDelta(t, 1.0, scores["pos"]+scores["neg"]+scores["neu"], 0.001)
	assert.GreaterOrEqual(t, scores["compound"], -1.0)
	assert.LessOrEqual(t, scores["compound"], 1.0)
}

func TestUnknownProvider(t *testing.T) {
	a := New(nil)
	err := a.Initialize(context.Background(), pipeline.Config{"analyzer": "transformer-xxl"})
	assert.Error(t, err)
}

func TestRemoteRequiresAPIKey(t *testing.T) {
	a := New(nil)
	err := a.Initialize(context.Background(), pipeline.Config{"analyzer": ProviderRemote})
	assert.Error(t, err)
}

func TestProcessUninitialized(t *testing.T) {
	a := New(nil)
	_, err := a.Process(context.Background(), "text", nil)
	assert.Error(t, err)
}

func TestRemoteProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[{"label":"POSITIVE","score":0.97},{"label":"NEGATIVE","score":0.03}]]`))
	}))
	defer srv.Close()

	a := New(nil)
	require.NoError(t, a.Initialize(context.Background(), pipeline.Config{
		"analyzer": ProviderRemote,
		"api_key":  "token",
		"base_url": srv.URL,
	}))

	result, err := a.Process(context.Background(), "love it", nil)
	require.NoError(t, err)

	assert.Equal(t, "positive", result["sentiment"])
	scores := result["scores"].(map[string]float64)
	assert.InDelta(t, 0.97, scores["positive"], 0.001)
}

func TestRemoteNeutralWhenClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[{"label":"POSITIVE","score":0.55},{"label":"NEGATIVE","score":0.45}]]`))
	}))
	defer srv.Close()

	a := New(nil)
	require.NoError(t, a.Initialize(context.Background(), pipeline.Config{
		"analyzer": ProviderRemote,
		"api_key":  "token",
		"base_url": srv.URL,
	}))

	result, err := a.Process(context.Background(), "it was fine I guess", nil)
	require.NoError(t, err)
	assert.Equal(t, "neutral", result["sentiment"])
}
