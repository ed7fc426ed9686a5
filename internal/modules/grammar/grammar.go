// Package grammar checks text for grammar and spelling issues using a
// LanguageTool HTTP server.
package grammar

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/httpx"
	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
)

const (
	defaultServerURL = "http://localhost:8081"
	maxReplacements  = 5
)

var languages = []string{"en-US", "en-GB", "fr-FR", "de-DE", "es-ES", "pt-PT"}

// Checker is the grammar checking module.
type Checker struct {
	client    *httpx.Client
	serverURL string
	language  string
	log       *logging.Logger
}

// New creates an unconfigured grammar checker.
func New(log *logging.Logger) *Checker {
	if log == nil {
		log = logging.NewNop()
	}
	return &Checker{log: log}
}

func (c *Checker) Name() string        { return "grammar" }
func (c *Checker) Languages() []string { return languages }

// Initialize configures the LanguageTool endpoint. Recognized config keys:
// server_url, language.
func (c *Checker) Initialize(_ context.Context, cfg pipeline.Config) error {
	c.serverURL = cfg.String("server_url", defaultServerURL)
	c.language = cfg.String("language", pipeline.DefaultLanguage)

	if !supported(c.language) {
		c.log.Warn("unsupported default language, falling back",
			zap.String("language", c.language),
			zap.String("fallback", pipeline.DefaultLanguage))
		c.language = pipeline.DefaultLanguage
	}

	c.client = httpx.New("languagetool")
	c.log.Info("grammar checker initialized",
		zap.String("server_url", c.serverURL),
		zap.String("language", c.language))
	return nil
}

// ltReplacement is one suggested replacement for a match.
type ltReplacement struct {
	Value string `json:"value"`
}

// ltMatch mirrors one entry of the LanguageTool /v2/check matches array.
type ltMatch struct {
	Message string `json:"message"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
	Rule    struct {
		ID string `json:"id"`
	} `json:"rule"`
	Replacements []ltReplacement `json:"replacements"`
}

type checkResponse struct {
	Matches []ltMatch `json:"matches"`
}

// Process checks the text and returns the issues found plus a corrected
// rendition with each issue's top replacement applied.
func (c *Checker) Process(ctx context.Context, text string, opts pipeline.Options) (pipeline.Result, error) {
	if c.client == nil {
		return nil, fmt.Errorf("grammar checker not initialized")
	}

	language := opts.String("language", c.language)
	var parsed checkResponse

	resp, err := c.client.Do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetFormData(map[string]string{
				"text":     text,
				"language": language,
			}).
			SetResult(&parsed).
			Post(c.serverURL + "/v2/check")
	})
	if err != nil {
		return nil, fmt.Errorf("languagetool request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("languagetool returned %s", resp.Status())
	}

	issues := make([]map[string]any, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		replacements := make([]string, 0, maxReplacements)
		for i, rep := range m.Replacements {
			if i == maxReplacements {
				break
			}
			replacements = append(replacements, rep.Value)
		}
		issues = append(issues, map[string]any{
			"message":      m.Message,
			"offset":       m.Offset,
			"length":       m.Length,
			"rule_id":      m.Rule.ID,
			"replacements": replacements,
		})
	}

	return pipeline.Result{
		"issues_count":   len(issues),
		"issues":         issues,
		"corrected_text": correct(text, parsed.Matches),
	}, nil
}

// correct applies each match's first replacement, right to left so earlier
// offsets stay valid.
func correct(text string, matches []ltMatch) string {
	ordered := append([]ltMatch(nil), matches...)
	sort.Slice(ordered, func(a, b int) bool {
		return ordered[a].Offset > ordered[b].Offset
	})

	out := []rune(text)
	for _, m := range ordered {
		if len(m.Replacements) == 0 {
			continue
		}
		if m.Offset < 0 || m.Offset+m.Length > len(out) {
			continue
		}
		replacement := []rune(m.Replacements[0].Value)
		out = append(out[:m.Offset], append(replacement, out[m.Offset+m.Length:]...)...)
	}
	return string(out)
}

func supported(language string) bool {
	for _, l := range languages {
		if l == language {
			return true
		}
	}
	return false
}
