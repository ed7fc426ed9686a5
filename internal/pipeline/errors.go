package pipeline

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when an execution operation is attempted
// before a successful InitializeAll.
var ErrNotInitialized = errors.New("pipeline not initialized")

// InitError wraps a module initialization failure. It aborts pipeline
// startup and identifies the offending module.
type InitError struct {
	Module string
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing module %q: %v", e.Module, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// NotFoundError is returned when a caller names a module that was never
// registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %q not registered", e.Name)
}

// ProcessError wraps a module's failure during Process.
type ProcessError struct {
	Module string
	Err    error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
