package pipeline

import "context"

// DefaultLanguage is the language tag assumed when a request does not
// specify one.
const DefaultLanguage = "en-US"

// Module is the contract every analysis capability implements.
type Module interface {
	// Name returns the module's unique, stable identifier.
	Name() string

	// Languages returns the language tags this module can process.
	Languages() []string

	// Initialize establishes the module's long-lived resources. It is
	// called exactly once per InitializeAll, before any Process call.
	Initialize(ctx context.Context, cfg Config) error

	// Process analyzes the input text and returns a module-specific
	// result. The pipeline stores and forwards results without
	// inspecting their contents.
	Process(ctx context.Context, text string, opts Options) (Result, error)
}

// LanguageChecker lets a module replace the default membership test used
// for capability gating.
type LanguageChecker interface {
	CanProcess(language string) bool
}

// CanProcess reports whether a module supports the given language. Modules
// implementing LanguageChecker decide for themselves; everything else uses
// membership in Languages().
func CanProcess(m Module, language string) bool {
	if lc, ok := m.(LanguageChecker); ok {
		return lc.CanProcess(language)
	}
	for _, l := range m.Languages() {
		if l == language {
			return true
		}
	}
	return false
}

// Config holds a module's initialization options. Keys are entirely
// module-specific; unrecognized keys are ignored.
type Config map[string]any

// Options holds request-scoped processing options. The pipeline itself
// only understands "language".
type Options map[string]any

// Result is a module's output. The orchestrator treats it as opaque.
type Result map[string]any

// Skipped reports whether the result is the skip sentinel returned when a
// module does not support the requested language.
func (r Result) Skipped() bool {
	v, ok := r["skipped"].(bool)
	return ok && v
}

func skipResult(language string) Result {
	return Result{"skipped": true, "language": language}
}

// String returns the string value for key, or fallback when absent or of
// the wrong type.
func (o Options) String(key, fallback string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return fallback
}

// Int returns the int value for key, accepting JSON/YAML numeric decodings.
func (o Options) Int(key string, fallback int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// Float returns the float value for key, or fallback.
func (o Options) Float(key string, fallback float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return fallback
}

// Bool returns the bool value for key, or fallback.
func (o Options) Bool(key string, fallback bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return fallback
}

// Language returns the request language, defaulting to DefaultLanguage.
func (o Options) Language() string {
	return o.String("language", DefaultLanguage)
}

// Config shares the Options accessors.

func (c Config) String(key, fallback string) string  { return Options(c).String(key, fallback) }
func (c Config) Int(key string, fallback int) int    { return Options(c).Int(key, fallback) }
func (c Config) Float(key string, f float64) float64 { return Options(c).Float(key, f) }
func (c Config) Bool(key string, fallback bool) bool { return Options(c).Bool(key, fallback) }
