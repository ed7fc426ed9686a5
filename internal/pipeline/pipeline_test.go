package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-nlp/inkwell/internal/logging"
)

type fakeModule struct {
	name       string
	langs      []string
	initErr    error
	processErr error
	result     Result

	initCalls  int
	lastConfig Config
}

func (f *fakeModule) Name() string        { return f.name }
func (f *fakeModule) Languages() []string { return f.langs }

func (f *fakeModule) Initialize(_ context.Context, cfg Config) error {
	f.initCalls++
	f.lastConfig = cfg
	return f.initErr
}

func (f *fakeModule) Process(_ context.Context, text string, _ Options) (Result, error) {
	if f.processErr != nil {
		return nil, f.processErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return Result{"echo": text}, nil
}

func newFake(name string, langs ...string) *fakeModule {
	if len(langs) == 0 {
		langs = []string{DefaultLanguage}
	}
	return &fakeModule{name: name, langs: langs}
}

func newTestPipeline(mods ...Module) *Pipeline {
	p := New(logging.NewNop())
	for _, m := range mods {
		p.Register(m)
	}
	return p
}

func TestRegisterOverwrite(t *testing.T) {
	first := newFake("dup")
	second := newFake("dup")
	p := newTestPipeline(first, second)

	require.NoError(t, p.InitializeAll(context.Background(), nil))

	assert.Equal(t, []string{"dup"}, p.Names())
	assert.Equal(t, 0, first.initCalls, "overwritten module must not be initialized")
	assert.Equal(t, 1, second.initCalls)
}

func TestUnregister(t *testing.T) {
	p := newTestPipeline(newFake("a"))

	assert.True(t, p.Unregister("a"))
	assert.False(t, p.Unregister("a"), "second removal must report false")
	assert.False(t, p.Unregister("never-registered"))
	assert.Empty(t, p.Names())
}

func TestInitializeAllConfigRouting(t *testing.T) {
	a := newFake("a")
	b := newFake("b")
	p := newTestPipeline(a, b)

	err := p.InitializeAll(context.Background(), map[string]Config{
		"a": {"threshold": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, a.lastConfig.Int("threshold", 0))
	require.NotNil(t, b.lastConfig, "modules without a config entry receive an empty config")
	assert.Empty(t, b.lastConfig)
	assert.True(t, p.Initialized())
}

func TestInitializeAllFailFast(t *testing.T) {
	ok := newFake("ok")
	broken := newFake("broken")
	broken.initErr = errors.New("no credentials")
	after := newFake("after")
	p := newTestPipeline(ok, broken, after)

	err := p.InitializeAll(context.Background(), nil)

	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "broken", initErr.Module)
	assert.ErrorContains(t, err, "no credentials")

	assert.False(t, p.Initialized())
	assert.Equal(t, 1, ok.initCalls, "modules before the failure stay initialized")
	assert.Equal(t, 0, after.initCalls, "modules after the failure are never reached")

	_, runErr := p.RunAll(context.Background(), "text", nil)
	assert.ErrorIs(t, runErr, ErrNotInitialized)
}

func TestExecutionRequiresInit(t *testing.T) {
	p := newTestPipeline(newFake("a"))

	_, err := p.RunModule(context.Background(), "a", "text", nil)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = p.RunAll(context.Background(), "text", nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRunModuleNotFound(t *testing.T) {
	p := newTestPipeline(newFake("a"))
	require.NoError(t, p.InitializeAll(context.Background(), nil))

	_, err := p.RunModule(context.Background(), "missing", "text", nil)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Name)
}

func TestRunModuleSkipsUnsupportedLanguage(t *testing.T) {
	p := newTestPipeline(newFake("english", "en-US"))
	require.NoError(t, p.InitializeAll(context.Background(), nil))

	result, err := p.RunModule(context.Background(), "english", "bonjour",
		Options{"language": "fr-FR"})

	require.NoError(t, err, "language mismatch is a skip, not an error")
	assert.True(t, result.Skipped())
	assert.Equal(t, "fr-FR", result["language"])
}

func TestRunModulePropagatesFailure(t *testing.T) {
	m := newFake("flaky")
	m.processErr = errors.New("boom")
	p := newTestPipeline(m)
	require.NoError(t, p.InitializeAll(context.Background(), nil))

	_, err := p.RunModule(context.Background(), "flaky", "text", nil)

	var pe *ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "flaky", pe.Module)
	assert.ErrorContains(t, err, "boom")
}

func TestRunModuleDefaultLanguage(t *testing.T) {
	p := newTestPipeline(newFake("a", "en-US"))
	require.NoError(t, p.InitializeAll(context.Background(), nil))

	result, err := p.RunModule(context.Background(), "a", "hello", nil)
	require.NoError(t, err)
	assert.False(t, result.Skipped())
	assert.Equal(t, "hello", result["echo"])
}

func TestRunAllLanguageGating(t *testing.T) {
	p := newTestPipeline(
		newFake("a", "en-US"),
		newFake("b", "fr-FR"),
	)
	require.NoError(t, p.InitializeAll(context.Background(), nil))

	english, err := p.RunAll(context.Background(), "hello", Options{"language": "en-US"})
	require.NoError(t, err)
	assert.Len(t, english, 1)
	assert.Contains(t, english, "a")

	french, err := p.RunAll(context.Background(), "bonjour", Options{"language": "fr-FR"})
	require.NoError(t, err)
	assert.Len(t, french, 1)
	assert.Contains(t, french, "b")
}

func TestRunAllFaultIsolation(t *testing.T) {
	healthy := newFake("healthy")
	failing := newFake("x")
	failing.processErr = errors.New("boom")
	alsoHealthy := newFake("steady")
	p := newTestPipeline(healthy, failing, alsoHealthy)
	require.NoError(t, p.InitializeAll(context.Background(), nil))

	results, err := p.RunAll(context.Background(), "text", nil)
	require.NoError(t, err)

	require.Len(t, results, 3, "one failing module must not suppress the others")
	assert.Equal(t, Result{"error": "boom"}, results["x"])
	assert.Equal(t, "text", results["healthy"]["echo"])
	assert.Equal(t, "text", results["steady"]["echo"])
}

type pickyModule struct {
	*fakeModule
}

func (pickyModule) CanProcess(language string) bool { return language == "de-DE" }

func TestCanProcessOverride(t *testing.T) {
	m := pickyModule{newFake("picky", "en-US")}

	assert.True(t, CanProcess(m, "de-DE"))
	assert.False(t, CanProcess(m, "en-US"), "override replaces membership test")
}

func TestReinitializeCapturesNewConfig(t *testing.T) {
	m := newFake("a")
	p := newTestPipeline(m)

	require.NoError(t, p.InitializeAll(context.Background(), map[string]Config{"a": {"v": 1}}))
	require.NoError(t, p.InitializeAll(context.Background(), map[string]Config{"a": {"v": 2}}))

	assert.Equal(t, 2, m.initCalls)
	assert.Equal(t, 2, m.lastConfig.Int("v", 0))
}
