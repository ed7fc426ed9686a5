// Package pipeline provides the orchestration core for pluggable text
// analysis modules.
//
// A Pipeline owns a registry of named Module implementations and drives
// their lifecycle: register, initialize with per-module configuration,
// then execute against input text either one module at a time or fanned
// out across every module capable of the requested language.
//
// Components:
//   - Module: Contract every analysis capability implements
//   - Pipeline: Registry, lifecycle manager, and execution engine
//   - Config/Options/Result: Loosely typed maps with accessor helpers
//
// Execution semantics:
//   - InitializeAll is fail-fast: the first module that cannot initialize
//     aborts startup and the pipeline stays unusable
//   - RunModule propagates module failures to the caller
//   - RunAll isolates failures per module: a failing module contributes an
//     error entry while every other module still runs
//   - Modules that do not support the requested language are skipped,
//     never failed
//
// Example Usage:
//
//	p := pipeline.New(logger)
//	p.Register(grammar.New())
//	p.Register(sentiment.New())
//	if err := p.InitializeAll(ctx, cfg.Modules); err != nil {
//	    log.Fatal(err)
//	}
//	results, err := p.RunAll(ctx, text, pipeline.Options{"language": "en-US"})
package pipeline
