// Package completion generates text continuations through an
// OpenAI-compatible chat completions API.
package completion

import (
	"bufio"
	"context"
	"encoding/json"
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
	defaultBaseURL     = "https://integrate.api.nvidia.com/v1"
	defaultModel       = "nv-mistralai/mistral-nemo-12b-instruct"
	defaultMaxTokens   = 100
	defaultTemperature = 0.2
	defaultTopP        = 0.7

	systemPrompt = "You are a helpful assistant. Complete the text appropriately."
)

var languages = []string{
	"en-US", "en-GB", "fr-FR", "de-DE", "es-ES",
	"it-IT", "pt-PT", "ru-RU", "zh-CN", "ja-JP",
}

// Completer is the text completion module.
type Completer struct {
	client      *httpx.Client
	baseURL     string
	modelName   string
	apiKey      string
	maxTokens   int
	temperature float64
	topP        float64
	stream      bool
	log         *logging.Logger
}

// New creates an unconfigured completer.
func New(log *logging.Logger) *Completer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Completer{log: log}
}

func (c *Completer) Name() string        { return "completion" }
func (c *Completer) Languages() []string { return languages }

// Initialize configures the API client. Recognized config keys: base_url,
// model_name, api_key (falls back to NVIDIA_API_KEY), max_tokens,
// temperature, top_p, stream.
func (c *Completer) Initialize(_ context.Context, cfg pipeline.Config) error {
	c.baseURL = strings.TrimRight(cfg.String("base_url", defaultBaseURL), "/")
	c.modelName = cfg.String("model_name", defaultModel)
	c.apiKey = cfg.String("api_key", os.Getenv("NVIDIA_API_KEY"))
	c.maxTokens = cfg.Int("max_tokens", defaultMaxTokens)
	c.temperature = cfg.Float("temperature", defaultTemperature)
	c.topP = cfg.Float("top_p", defaultTopP)
	c.stream = cfg.Bool("stream", false)

	if c.apiKey == "" {
		return fmt.Errorf("completion api_key is required")
	}

	c.client = httpx.New("completion-api")
	c.log.Info("completion module initialized",
		zap.String("model", c.modelName),
		zap.String("base_url", c.baseURL))
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Process generates a completion for the input text. Options max_tokens,
// temperature, top_p, and stream override the configured defaults per
// request.
func (c *Completer) Process(ctx context.Context, text string, opts pipeline.Options) (pipeline.Result, error) {
	if c.client == nil {
		return nil, fmt.Errorf("completion module not initialized")
	}

	req := chatRequest{
		Model: c.modelName,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: opts.Float("temperature", c.temperature),
		TopP:        opts.Float("top_p", c.topP),
		MaxTokens:   opts.Int("max_tokens", c.maxTokens),
		Stream:      opts.Bool("stream", c.stream),
	}

	if req.Stream {
		return c.processStream(ctx, req)
	}
	return c.processOnce(ctx, req)
}

func (c *Completer) processOnce(ctx context.Context, req chatRequest) (pipeline.Result, error) {
	var parsed chatResponse

	resp, err := c.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetHeader("Authorization", "Bearer "+c.apiKey).
			SetBody(req).
			SetResult(&parsed).
			Post(c.baseURL + "/chat/completions")
	})
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("completion API returned %s", resp.Status())
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("completion API returned no choices")
	}

	result := pipeline.Result{
		"completion": parsed.Choices[0].Message.Content,
	}
	if parsed.Usage.TotalTokens > 0 {
		result["tokens_used"] = parsed.Usage.TotalTokens
	}
	return result, nil
}

// processStream accumulates server-sent event chunks into one completion.
// Token usage is not reported in streaming mode.
func (c *Completer) processStream(ctx context.Context, req chatRequest) (pipeline.Result, error) {
	resp, err := c.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetHeader("Authorization", "Bearer "+c.apiKey).
			SetHeader("Accept", "text/event-stream").
			SetBody(req).
			SetDoNotParseResponse(true).
			Post(c.baseURL + "/chat/completions")
	})
	if err != nil {
		return nil, fmt.Errorf("completion stream request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("completion API returned %s", resp.Status())
	}

	var parts []string
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			c.log.Warn("skipping malformed stream chunk", zap.Error(err))
			continue
		}
		if len(chunk.Choices) > 0 {
			parts = append(parts, chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading completion stream: %w", err)
	}

	return pipeline.Result{
		"completion": strings.Join(parts, ""),
	}, nil
}
