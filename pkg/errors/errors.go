// Package errors provides structured error reporting for tether.
//
// The reactive core (proxy, core, vdom) never recovers from faults: they
// propagate to the immediate caller. Reporting through this package happens
// only at the host edge, where the host itself would otherwise swallow the
// failure, for example a listener that panics while the host dispatches an
// event.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindHost indicates a failed call across the host boundary.
	KindHost
	// KindRender indicates a failure while realizing a tree description.
	KindRender
	// KindListener indicates a failure inside an event listener invoked by the host.
	KindListener
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindHost:
		return "host"
	case KindRender:
		return "render"
	case KindListener:
		return "listener"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// HostError represents a structured error raised at the host boundary.
type HostError struct {
	// Op is the operation that failed (e.g., "vdom.Patch").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Target names the element id, tag or event involved, if any.
	Target string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *HostError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s [%s] target=%s: %v", e.Op, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "htmldom.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported at the host edge.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *HostError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
