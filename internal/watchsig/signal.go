// Package watchsig spots compile-cycle boundaries in the raw output of a
// compiler running in watch mode.
package watchsig

import (
	"context"
	"fmt"
)

// Kind says which cycle boundary a Signal marks.
type Kind uint8

const (
	// CycleStarted is emitted when the compiler starts a (re)compilation.
	CycleStarted Kind = iota + 1
	// CycleCompleted is emitted when a compilation finishes.
	CycleCompleted
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case CycleStarted:
		return "started"
	case CycleCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Signal is one detected cycle boundary.
type Signal struct {
	Kind Kind
	// Errors is the number of errors reported for the cycle. Only set for
	// CycleCompleted.
	Errors int
	// Offset is the byte offset of the marker within the chunk it was found in.
	Offset int
}

// Success reports whether s completes a cycle without errors.
func (s Signal) Success() bool {
	return s.Kind == CycleCompleted && s.Errors == 0
}

func (s Signal) String() string {
	if s.Kind == CycleCompleted {
		return fmt.Sprintf("%s (%d errors)", s.Kind, s.Errors)
	}
	return s.Kind.String()
}

// Handler consumes detected signals.
type Handler interface {
	HandleSignal(ctx context.Context, sig Signal) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, sig Signal) error

// HandleSignal calls f.
func (f HandlerFunc) HandleSignal(ctx context.Context, sig Signal) error {
	return f(ctx, sig)
}
