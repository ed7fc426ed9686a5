// Package modules maps symbolic module names to their constructors.
//
// The CLI resolves config-file module names through this table, keeping
// the name-to-instance indirection without any runtime type discovery.
package modules

import (
	"fmt"
	"sort"

	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/modules/completion"
	"github.com/inkwell-nlp/inkwell/internal/modules/grammar"
	"github.com/inkwell-nlp/inkwell/internal/modules/sentiment"
	"github.com/inkwell-nlp/inkwell/internal/modules/summarize"
	"github.com/inkwell-nlp/inkwell/internal/modules/voice"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
)

var factories = map[string]func(*logging.Logger) pipeline.Module{
	"grammar":    func(log *logging.Logger) pipeline.Module { return grammar.New(log) },
	"sentiment":  func(log *logging.Logger) pipeline.Module { return sentiment.New(log) },
	"voice":      func(log *logging.Logger) pipeline.Module { return voice.New(log) },
	"completion": func(log *logging.Logger) pipeline.Module { return completion.New(log) },
	"summarize":  func(log *logging.Logger) pipeline.Module { return summarize.New(log) },
}

// New constructs the module registered under name.
func New(name string, log *logging.Logger) (pipeline.Module, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown module %q (known: %v)", name, Names())
	}
	return factory(log), nil
}

// Names returns the known module names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
