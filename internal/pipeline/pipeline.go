package pipeline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/logging"
)

// Observer receives per-module execution outcomes. Implementations must be
// safe for concurrent use.
type Observer interface {
	ModuleRun(module, status string, duration time.Duration)
}

// Pipeline orchestrates registered modules: it owns the registry, drives
// initialization, and executes requests against capable modules.
type Pipeline struct {
	mu          sync.RWMutex
	modules     map[string]Module
	order       []string
	config      map[string]Config
	initialized bool
	log         *logging.Logger
	obs         Observer
}

// New creates an empty pipeline. A nil logger falls back to a no-op logger.
func New(log *logging.Logger) *Pipeline {
	if log == nil {
		log = logging.NewNop()
	}
	return &Pipeline{
		modules: make(map[string]Module),
		config:  make(map[string]Config),
		log:     log,
	}
}

// SetObserver attaches an execution observer. Call before serving traffic.
func (p *Pipeline) SetObserver(obs Observer) {
	p.obs = obs
}

// Register adds a module to the registry. Registering a name that already
// exists replaces the previous binding; the overwrite is logged as a
// warning, not treated as an error.
func (p *Pipeline) Register(m Module) {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := m.Name()
	if _, exists := p.modules[name]; exists {
		p.log.Warn("module already registered, overwriting", zap.String("module", name))
	} else {
		p.order = append(p.order, name)
	}
	p.modules[name] = m
	p.log.Info("registered module", zap.String("module", name))
}

// Unregister removes a module by name and reports whether a binding was
// removed. Unregistering an unknown name is not an error.
func (p *Pipeline) Unregister(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.modules[name]; !exists {
		p.log.Warn("cannot unregister unknown module", zap.String("module", name))
		return false
	}
	delete(p.modules, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.log.Info("unregistered module", zap.String("module", name))
	return true
}

// Names returns the registered module names in registration order.
func (p *Pipeline) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.order...)
}

// Initialized reports whether InitializeAll has completed successfully.
func (p *Pipeline) Initialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.initialized
}

// InitializeAll initializes every registered module in registration order
// with its configuration from cfg; modules without an entry receive an
// empty configuration. The first failure aborts startup: already
// initialized modules are left as-is, the pipeline stays unusable, and the
// returned InitError names the failing module.
func (p *Pipeline) InitializeAll(ctx context.Context, cfg map[string]Config) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cfg == nil {
		cfg = make(map[string]Config)
	}
	p.config = cfg

	for _, name := range p.order {
		m := p.modules[name]
		mc := cfg[name]
		if mc == nil {
			mc = Config{}
		}
		if err := m.Initialize(ctx, mc); err != nil {
			p.log.Error("module initialization failed",
				zap.String("module", name), zap.Error(err))
			return &InitError{Module: name, Err: err}
		}
		p.log.Info("initialized module", zap.String("module", name))
	}

	p.initialized = true
	p.log.Info("pipeline initialization complete", zap.Int("modules", len(p.order)))
	return nil
}

// RunModule executes one named module against the input text. Failures are
// not isolated: the caller asked for exactly this module and sees its
// error. A language the module does not support yields the skip sentinel
// result, not an error.
func (p *Pipeline) RunModule(ctx context.Context, name, text string, opts Options) (Result, error) {
	p.mu.RLock()
	initialized := p.initialized
	m, exists := p.modules[name]
	p.mu.RUnlock()

	if !initialized {
		return nil, ErrNotInitialized
	}
	if !exists {
		return nil, &NotFoundError{Name: name}
	}
	if opts == nil {
		opts = Options{}
	}

	language := opts.Language()
	if !CanProcess(m, language) {
		p.log.Info("module does not support language, skipping",
			zap.String("module", name), zap.String("language", language))
		p.observe(name, "skipped", 0)
		return skipResult(language), nil
	}

	start := time.Now()
	result, err := m.Process(ctx, text, opts)
	if err != nil {
		p.log.Error("module failed", zap.String("module", name), zap.Error(err))
		p.observe(name, "error", time.Since(start))
		return nil, &ProcessError{Module: name, Err: err}
	}
	p.observe(name, "ok", time.Since(start))
	return result, nil
}

// RunAll fans the input text out to every registered module that supports
// the request language, in registration order, and collects the results.
// Modules that do not support the language are omitted. A failing module
// contributes an error entry instead of a result; it never prevents the
// remaining modules from running.
func (p *Pipeline) RunAll(ctx context.Context, text string, opts Options) (map[string]Result, error) {
	p.mu.RLock()
	initialized := p.initialized
	order := append([]string(nil), p.order...)
	modules := make(map[string]Module, len(p.modules))
	for n, m := range p.modules {
		modules[n] = m
	}
	p.mu.RUnlock()

	if !initialized {
		return nil, ErrNotInitialized
	}
	if opts == nil {
		opts = Options{}
	}

	language := opts.Language()
	results := make(map[string]Result)

	for _, name := range order {
		m := modules[name]
		if !CanProcess(m, language) {
			p.log.Info("skipping module for unsupported language",
				zap.String("module", name), zap.String("language", language))
			p.observe(name, "skipped", 0)
			continue
		}

		start := time.Now()
		result, err := m.Process(ctx, text, opts)
		if err != nil {
			p.log.Error("module failed during fan-out",
				zap.String("module", name), zap.Error(err))
			p.observe(name, "error", time.Since(start))
			results[name] = Result{"error": err.Error()}
			continue
		}
		p.observe(name, "ok", time.Since(start))
		results[name] = result
	}

	return results, nil
}

func (p *Pipeline) observe(module, status string, d time.Duration) {
	if p.obs != nil {
		p.obs.ModuleRun(module, status, d)
	}
}
