// Package rerun re-launches a command after every successful compile cycle,
// keeping at most one copy of it alive.
package rerun

import (
	"context"
	"io"
	"strings"
)

// Spec describes the command to (re)launch.
type Spec struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string // extra KEY=VALUE pairs appended to the inherited environment
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line as typed.
func (s Spec) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Process is a launched child.
type Process interface {
	Pid() int
	// Interrupt asks the child to exit.
	Interrupt() error
	// Kill ends the child without giving it a chance to clean up.
	Kill() error
	// Done is closed once the child has exited and been reaped.
	Done() <-chan struct{}
	// ExitCode is valid after Done is closed; -1 when the child was killed by a signal.
	ExitCode() int
	// Err is the wait error, valid after Done is closed.
	Err() error
}

// Launcher starts child processes.
type Launcher interface {
	Launch(ctx context.Context, spec Spec) (Process, error)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context, spec Spec) (Process, error)

// Launch calls f.
func (f LauncherFunc) Launch(ctx context.Context, spec Spec) (Process, error) {
	return f(ctx, spec)
}
