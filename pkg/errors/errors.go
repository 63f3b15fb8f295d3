// Package errors provides structured error handling for the Ripple runtime.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSetup indicates a failure during a component's one-time setup phase.
	KindSetup
	// KindRender indicates a failure during a render phase.
	KindRender
	// KindCleanup indicates a failure in a cleanup or after-render callback.
	KindCleanup
	// KindHost indicates a host adapter failure.
	KindHost
)

func (k ErrorKind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindRender:
		return "render"
	case KindCleanup:
		return "cleanup"
	case KindHost:
		return "host"
	default:
		return "unknown"
	}
}

// SetupError reports a failure in a component's setup function.
// The instance is never mounted when setup fails; no partial instance
// is left behind.
type SetupError struct {
	// Component is the name of the component whose setup failed.
	Component string
	// Instance is the runtime-assigned instance ID, if one was allocated.
	Instance string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the failure.
	StackTrace string
	// Timestamp is when the failure occurred.
	Timestamp time.Time
}

func (e *SetupError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s setup: %v", e.Component, e.Recovered)
	}
	return fmt.Sprintf("error in %s setup: %v", e.Component, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// RenderError reports a failure in a component's render function.
// The instance's previously committed output remains in place.
type RenderError struct {
	// Component is the name of the component whose render failed.
	Component string
	// Instance is the runtime-assigned instance ID.
	Instance string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the failure.
	StackTrace string
	// Timestamp is when the failure occurred.
	Timestamp time.Time
}

func (e *RenderError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s render: %v", e.Component, e.Recovered)
	}
	return fmt.Sprintf("error in %s render: %v", e.Component, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// CleanupError aggregates failures from cleanup or after-render callbacks.
// A throwing callback never prevents the remaining callbacks in its batch
// from running, so one batch can accumulate several failures.
type CleanupError struct {
	// Component is the name of the component whose callbacks failed.
	Component string
	// Instance is the runtime-assigned instance ID.
	Instance string
	// Phase is "cleanup" or "after-render".
	Phase string
	// Recovered holds the panic values, one per failed callback.
	Recovered []any
	// Timestamp is when the first failure occurred.
	Timestamp time.Time
}

func (e *CleanupError) Error() string {
	if len(e.Recovered) == 1 {
		return fmt.Sprintf("panic in %s %s callback: %v", e.Component, e.Phase, e.Recovered[0])
	}
	parts := make([]string, len(e.Recovered))
	for i, r := range e.Recovered {
		parts[i] = fmt.Sprint(r)
	}
	return fmt.Sprintf("%d panics in %s %s callbacks: %s",
		len(e.Recovered), e.Component, e.Phase, strings.Join(parts, "; "))
}

// Handler receives errors reported by the Ripple runtime.
type Handler interface {
	// HandleSetupError is called when a component setup fails.
	HandleSetupError(err *SetupError)
	// HandleRenderError is called when a render phase fails.
	HandleRenderError(err *RenderError)
	// HandleCleanupError is called when cleanup or after-render callbacks fail.
	HandleCleanupError(err *CleanupError)
}
