// Package summarize condenses text through a hosted summarization model.
package summarize

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/httpx"
	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
)

const (
	defaultModel     = "facebook/bart-large-cnn"
	defaultInference = "https://api-inference.huggingface.co/models"
	defaultMaxLen    = 150
	defaultMinLen    = 30
)

var languages = []string{"en-US", "en-GB"}

// Summarizer is the text summarization module.
type Summarizer struct {
	client    *httpx.Client
	baseURL   string
	modelName string
	apiKey    string
	maxLength int
	minLength int
	log       *logging.Logger
}

// New creates an unconfigured summarizer.
func New(log *logging.Logger) *Summarizer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Summarizer{log: log}
}

func (s *Summarizer) Name() string        { return "summarize" }
func (s *Summarizer) Languages() []string { return languages }

// Initialize configures the inference endpoint. Recognized config keys:
// model_name, api_key (falls back to HF_API_TOKEN), base_url, max_length,
// min_length.
func (s *Summarizer) Initialize(_ context.Context, cfg pipeline.Config) error {
	s.modelName = cfg.String("model_name", defaultModel)
	s.apiKey = cfg.String("api_key", os.Getenv("HF_API_TOKEN"))
	s.baseURL = strings.TrimRight(cfg.String("base_url", defaultInference), "/")
	s.maxLength = cfg.Int("max_length", defaultMaxLen)
	s.minLength = cfg.Int("min_length", defaultMinLen)

	if s.apiKey == "" {
		return fmt.Errorf("summarizer api_key is required")
	}

	s.client = httpx.New("summarize-inference")
	s.log.Info("summarizer initialized", zap.String("model", s.modelName))
	return nil
}

type summaryResponse struct {
	SummaryText string `json:"summary_text"`
}

// Process summarizes the text. Inputs shorter than min_length words are
// returned unchanged. Options max_length and min_length override the
// configured defaults.
func (s *Summarizer) Process(ctx context.Context, text string, opts pipeline.Options) (pipeline.Result, error) {
	if s.client == nil {
		return nil, fmt.Errorf("summarizer not initialized")
	}

	maxLength := opts.Int("max_length", s.maxLength)
	minLength := opts.Int("min_length", s.minLength)

	if words := len(strings.Fields(text)); words < minLength {
		s.log.Debug("text too short to summarize", zap.Int("words", words))
		return result(text, text), nil
	}

	var parsed []summaryResponse
	resp, err := s.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetHeader("Authorization", "Bearer "+s.apiKey).
			SetBody(map[string]any{
				"inputs": text,
				"parameters": map[string]any{
					"max_length": maxLength,
					"min_length": minLength,
				},
			}).
			SetResult(&parsed).
			Post(s.baseURL + "/" + s.modelName)
	})
	if err != nil {
		return nil, fmt.Errorf("summarization request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("summarization API returned %s", resp.Status())
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("summarization API returned no summary")
	}

	return result(text, parsed[0].SummaryText), nil
}

func result(original, summary string) pipeline.Result {
	ratio := 0.0
	if len(original) > 0 {
		ratio = float64(len(summary)) / float64(len(original))
	}
	return pipeline.Result{
		"summary":           summary,
		"original_length":   len(original),
		"summary_length":    len(summary),
		"compression_ratio": ratio,
	}
}
