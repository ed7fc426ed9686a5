// Package voice transcribes audio files to text through a speech
// recognition service.
//
// The module's Process input is the path to an audio file rather than the
// text itself; the upload handler saves incoming audio to a temporary file
// and hands the path through the pipeline.
package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/httpx"
	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
)

const (
	// ProviderWhisper posts the audio to a whisper-server instance.
	ProviderWhisper = "whisper"
	// ProviderGoogle posts the audio to the Google Speech API.
	ProviderGoogle = "google"

	defaultWhisperURL = "http://localhost:8080"
	googleSpeechURL   = "https://speech.googleapis.com/v1/speech:recognize"

	// Whisper does not report confidence; mirror a fixed optimistic value.
	whisperConfidence = 0.9
)

var languages = []string{"en-US", "en-GB", "fr-FR", "de-DE", "es-ES", "ja-JP", "zh-CN"}

// Transcriber is the voice-to-text module.
type Transcriber struct {
	provider string
	apiKey   string
	endpoint string
	client   *httpx.Client
	log      *logging.Logger
}

// New creates an unconfigured transcriber.
func New(log *logging.Logger) *Transcriber {
	if log == nil {
		log = logging.NewNop()
	}
	return &Transcriber{log: log}
}

func (t *Transcriber) Name() string        { return "voice" }
func (t *Transcriber) Languages() []string { return languages }

// Initialize configures the recognition backend. Recognized config keys:
// provider ("whisper" or "google"), api_key (falls back to
// SPEECH_API_KEY), endpoint.
func (t *Transcriber) Initialize(_ context.Context, cfg pipeline.Config) error {
	t.provider = cfg.String("provider", ProviderWhisper)
	t.apiKey = cfg.String("api_key", os.Getenv("SPEECH_API_KEY"))

	switch t.provider {
	case ProviderWhisper:
		t.endpoint = strings.TrimRight(cfg.String("endpoint", defaultWhisperURL), "/")
	case ProviderGoogle:
		t.endpoint = cfg.String("endpoint", googleSpeechURL)
		if t.apiKey == "" {
			return fmt.Errorf("google speech provider requires api_key")
		}
	default:
		return fmt.Errorf("unknown voice provider: %s", t.provider)
	}

	t.client = httpx.New("speech-" + t.provider)
	t.log.Info("voice transcriber initialized", zap.String("provider", t.provider))
	return nil
}

// Process transcribes the audio file at audioPath and returns the
// transcript with a confidence score.
func (t *Transcriber) Process(ctx context.Context, audioPath string, opts pipeline.Options) (pipeline.Result, error) {
	if t.client == nil {
		return nil, fmt.Errorf("voice transcriber not initialized")
	}

	kind, err := mimetype.DetectFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("reading audio file: %w", err)
	}
	if !strings.HasPrefix(kind.String(), "audio/") && !strings.HasPrefix(kind.String(), "video/") {
		return nil, fmt.Errorf("unsupported audio type %s", kind.String())
	}

	language := opts.Language()
	if t.provider == ProviderGoogle {
		return t.processGoogle(ctx, audioPath, language)
	}
	return t.processWhisper(ctx, audioPath, language)
}

type whisperResponse struct {
	Text string `json:"text"`
}

func (t *Transcriber) processWhisper(ctx context.Context, audioPath, language string) (pipeline.Result, error) {
	var parsed whisperResponse

	resp, err := t.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetFile("file", audioPath).
			SetFormData(map[string]string{
				"language":        shortLang(language),
				"response_format": "json",
			}).
			SetResult(&parsed).
			Post(t.endpoint + "/inference")
	})
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("whisper server returned %s", resp.Status())
	}

	return pipeline.Result{
		"text":       strings.TrimSpace(parsed.Text),
		"confidence": whisperConfidence,
	}, nil
}

type googleResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

func (t *Transcriber) processGoogle(ctx context.Context, audioPath, language string) (pipeline.Result, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("reading audio file: %w", err)
	}

	var parsed googleResponse
	resp, err := t.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetQueryParam("key", t.apiKey).
			SetBody(map[string]any{
				"config": map[string]any{"languageCode": language},
				"audio":  map[string]any{"content": base64.StdEncoding.EncodeToString(audio)},
			}).
			SetResult(&parsed).
			Post(t.endpoint)
	})
	if err != nil {
		return nil, fmt.Errorf("google speech request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google speech returned %s", resp.Status())
	}

	if len(parsed.Results) == 0 || len(parsed.Results[0].Alternatives) == 0 {
		return pipeline.Result{"text": "", "confidence": 0.0}, nil
	}

	best := parsed.Results[0].Alternatives[0]
	return pipeline.Result{
		"text":       best.Transcript,
		"confidence": best.Confidence,
	}, nil
}

// shortLang maps a BCP 47 tag to the bare language code whisper expects.
func shortLang(language string) string {
	if i := strings.IndexByte(language, '-'); i > 0 {
		return language[:i]
	}
	return language
}
