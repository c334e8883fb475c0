package vtree

import (
	"fmt"
)

// lifecycleError is a sentinel carrying a registry code.
type lifecycleError struct {
	code string
	msg  string
}

func (e *lifecycleError) Error() string { return e.msg }
func (e *lifecycleError) Code() string  { return e.code }

// Lifecycle violations. A component is constructed once, mounted at most
// once and unmounted at most once.
var (
	ErrUnmounted      error = &lifecycleError{code: "E130", msg: "vtree: component is unmounted"}
	ErrAlreadyMounted error = &lifecycleError{code: "E131", msg: "vtree: component is already mounted"}
)

// RenderError reports a panic raised inside a component's Render method.
type RenderError struct {
	// Component is the name of the component whose render failed.
	Component string

	// Value is the recovered panic value.
	Value any

	// Err is Value when it is an error, otherwise an error describing it.
	Err error

	// Stack is the goroutine stack at the time of the panic.
	Stack []byte
}

func newRenderError(component string, value any, stack []byte) *RenderError {
	err, ok := value.(error)
	if !ok {
		err = fmt.Errorf("%v", value)
	}
	return &RenderError{Component: component, Value: value, Err: err, Stack: stack}
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("vtree: render %s: %v", e.Component, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Code returns the registry code for render failures.
func (e *RenderError) Code() string { return "E100" }

// PatchError reports host state the reconciler could not apply a node to.
type PatchError struct {
	// Op names the failed step: "replace", "host", "unsupported" or "apply".
	Op string

	// Tag is the tag or component name of the node being applied.
	Tag string

	Err error

	code string
}

func newPatchError(code, op, tag string, err error) *PatchError {
	return &PatchError{Op: op, Tag: tag, Err: err, code: code}
}

func (e *PatchError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("vtree: patch %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("vtree: patch %s <%s>: %v", e.Op, e.Tag, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }

// Code returns the registry code for the failure.
func (e *PatchError) Code() string {
	if e.code == "" {
		return "E110"
	}
	return e.code
}

// LoadError reports a failed initial props loader.
type LoadError struct {
	Component string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("vtree: load initial props of %s: %v", e.Component, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Code returns the registry code for loader failures.
func (e *LoadError) Code() string { return "E101" }
