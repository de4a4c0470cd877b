package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wtsc/internal/trace"
)

// setupTracing initializes the tracer described by opts and attaches it to
// the command context. It returns a cleanup function.
func setupTracing(cmd *cobra.Command, opts traceOptions) (func(), error) {
	level, err := trace.ParseLevel(opts.level)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}

	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(opts.mode)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(opts.format)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: opts.output,
		RingSize:   opts.ringSize,
		Heartbeat:  opts.heartbeat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	var heartbeat *trace.Heartbeat
	if opts.heartbeat > 0 {
		heartbeat = trace.StartHeartbeat(tracer, opts.heartbeat)
	}

	cleanup := func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// dumpTraceOnPanic writes the recent trace history to stderr and re-panics.
// It must be deferred directly.
func dumpTraceOnPanic(t trace.Tracer) {
	r := recover()
	if r == nil {
		return
	}
	writeTraceDump(os.Stderr, t)
	panic(r)
}

func writeTraceDump(w io.Writer, t trace.Tracer) {
	fmt.Fprintln(w, "--- trace (most recent events) ---")
	ok, err := trace.Dump(t, w, trace.FormatText)
	switch {
	case err != nil:
		fmt.Fprintf(w, "trace: dump failed: %v\n", err)
	case !ok:
		fmt.Fprintln(w, "(no trace ring; rerun with --trace-level=error or --trace-mode=both)")
	}
}
