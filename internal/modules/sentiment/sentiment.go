// Package sentiment analyzes the emotional polarity of text, either with a
// built-in valence lexicon or a remote inference API.
package sentiment

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/httpx"
	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
)

const (
	// ProviderLexicon scores text with the built-in valence lexicon.
	ProviderLexicon = "lexicon"
	// ProviderRemote delegates to a hosted sentiment model.
	ProviderRemote = "remote"

	defaultModel     = "distilbert-base-uncased-finetuned-sst-2-english"
	defaultInference = "https://api-inference.huggingface.co/models"

	// Compound scores inside (-0.05, 0.05) are considered neutral.
	neutralBand = 0.05
	// Normalization constant for the compound score.
	alpha = 15.0
	// Negating a sentiment word dampens and flips its valence.
	negationFactor = -0.74
)

var languages = []string{"en-US", "en-GB"}

// Analyzer is the sentiment analysis module.
type Analyzer struct {
	provider  string
	modelName string
	apiKey    string
	baseURL   string
	client    *httpx.Client
	log       *logging.Logger

	ready bool
}

// New creates an unconfigured sentiment analyzer.
func New(log *logging.Logger) *Analyzer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Analyzer{log: log}
}

func (a *Analyzer) Name() string        { return "sentiment" }
func (a *Analyzer) Languages() []string { return languages }

// Initialize selects the provider. Recognized config keys: analyzer
// ("lexicon" or "remote"), model_name, api_key, base_url.
func (a *Analyzer) Initialize(_ context.Context, cfg pipeline.Config) error {
	a.provider = cfg.String("analyzer", ProviderLexicon)
	a.modelName = cfg.String("model_name", defaultModel)
	a.apiKey = cfg.String("api_key", os.Getenv("HF_API_TOKEN"))
	a.baseURL = cfg.String("base_url", defaultInference)

	switch a.provider {
	case ProviderLexicon:
		// Nothing to establish; the lexicon ships with the binary.
	case ProviderRemote:
		if a.apiKey == "" {
			return fmt.Errorf("remote sentiment analyzer requires api_key")
		}
		a.client = httpx.New("sentiment-inference")
	default:
		return fmt.Errorf("unknown sentiment analyzer type: %s", a.provider)
	}

	a.ready = true
	a.log.Info("sentiment analyzer initialized", zap.String("provider", a.provider))
	return nil
}

// Process scores the text and labels it positive, negative, or neutral.
func (a *Analyzer) Process(ctx context.Context, text string, _ pipeline.Options) (pipeline.Result, error) {
	if !a.ready {
		return nil, fmt.Errorf("sentiment analyzer not initialized")
	}
	if a.provider == ProviderRemote {
		return a.processRemote(ctx, text)
	}
	return a.processLexicon(text), nil
}

func (a *Analyzer) processLexicon(text string) pipeline.Result {
	scores := score(text)

	label := "neutral"
	if scores["compound"] >= neutralBand {
		label = "positive"
	} else if scores["compound"] <= -neutralBand {
		label = "negative"
	}

	return pipeline.Result{
		"scores":    scores,
		"sentiment": label,
	}
}

// score tokenizes the text and produces pos/neg/neu proportions plus a
// normalized compound score.
func score(text string) map[string]float64 {
	tokens := tokenize(text)

	var sum float64
	var posCount, negCount, neuCount int

	for i, tok := range tokens {
		valence, ok := lexicon[tok]
		if !ok {
			if _, boost := boosters[tok]; !boost && !negations[tok] {
				neuCount++
			}
			continue
		}

		if i > 0 {
			prev := tokens[i-1]
			if negations[prev] {
				valence *= negationFactor
			} else if boost, ok := boosters[prev]; ok {
				if valence < 0 {
					valence -= boost
				} else {
					valence += boost
				}
			}
		}

		sum += valence
		if valence > 0 {
			posCount++
		} else if valence < 0 {
			negCount++
		}
	}

	total := posCount + negCount + neuCount
	scores := map[string]float64{
		"pos": 0, "neg": 0, "neu": 0,
		"compound": round4(sum / math.Sqrt(sum*sum+alpha)),
	}
	if total > 0 {
		scores["pos"] = round4(float64(posCount) / float64(total))
		scores["neg"] = round4(float64(negCount) / float64(total))
		scores["neu"] = round4(float64(neuCount) / float64(total))
	}
	return scores
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		tok = strings.ReplaceAll(tok, "'", "")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// inferenceLabel is one label/score pair from the hosted model.
type inferenceLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (a *Analyzer) processRemote(ctx context.Context, text string) (pipeline.Result, error) {
	var parsed [][]inferenceLabel

	resp, err := a.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetHeader("Authorization", "Bearer "+a.apiKey).
			SetBody(map[string]string{"inputs": text}).
			SetResult(&parsed).
			Post(a.baseURL + "/" + a.modelName)
	})
	if err != nil {
		return nil, fmt.Errorf("sentiment inference request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sentiment inference returned %s", resp.Status())
	}
	if len(parsed) == 0 || len(parsed[0]) == 0 {
		return nil, fmt.Errorf("sentiment inference returned no labels")
	}

	scores := make(map[string]float64, len(parsed[0]))
	for _, l := range parsed[0] {
		scores[strings.ToLower(l.Label)] = round4(l.Score)
	}

	positive := scores["positive"]
	negative := scores["negative"]
	label := "positive"
	if negative > positive {
		label = "negative"
	}
	if math.Abs(positive-negative) < 0.2 {
		label = "neutral"
	}

	return pipeline.Result{
		"scores":    scores,
		"sentiment": label,
	}, nil
}
