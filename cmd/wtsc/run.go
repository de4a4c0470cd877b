package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wtsc/internal/highlight"
	"wtsc/internal/observ"
	"wtsc/internal/rerun"
	"wtsc/internal/stream"
	"wtsc/internal/trace"
	"wtsc/internal/ui"
	"wtsc/internal/watchsig"
)

// exitCodeError carries the compiler's exit status out of RunE.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("compiler exited with code %d", e.code)
}

// console is the terminal side of a run.
type console struct {
	in      io.Reader
	out     io.Writer
	colored bool
	width   int
}

func runRoot(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath, ".")
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, cfg, args)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd, opts.trace)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	defer dumpTraceOnPanic(trace.FromContext(ctx))

	return runFilter(ctx, opts, console{
		in:      os.Stdin,
		out:     os.Stdout,
		colored: shouldUseColor(opts.color, os.Stdout),
		width:   ui.Width(os.Stdout),
	})
}

// runFilter pipes the compiler output through the highlighter and, when an
// exec command is configured, supervises its re-runs.
func runFilter(ctx context.Context, opts runOptions, con console) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeSession, "session", 0)
	ctx = trace.WithParentSpan(ctx, span)

	src, err := openSource(ctx, opts, con.in)
	if err != nil {
		span.End("open failed")
		return err
	}

	timer := observ.NewTimer()
	pump := &stream.Pump{
		Src:      src,
		Out:      con.out,
		Filter:   highlight.NewFilter(highlight.NewPalette(con.colored), highlight.KeepClearScreen(opts.noClear)),
		Detector: watchsig.NewDetector(),
	}
	if opts.timings {
		pump.Handlers = append(pump.Handlers, observ.NewCycleRecorder(timer))
	}

	session := &stream.Session{Pump: pump}
	if len(opts.exec) > 0 {
		ropts := opts.rerunOptions()
		ropts.Reporter = ui.NewStatusPrinter(con.out, con.colored, con.width)
		coord, err := rerun.New(nil, opts.rerunSpec(), ropts)
		if err != nil {
			_ = src.Close()
			span.End("rerun setup failed")
			return err
		}
		pump.Handlers = append(pump.Handlers, coord)
		session.Supervisor = coord
	}

	runErr := session.Run(ctx)
	_ = src.Close()
	code, waitErr := src.Wait()
	span.WithExtra("exit", fmt.Sprint(code)).End("")

	if opts.timings {
		fmt.Fprint(con.out, timer.Summary())
	}
	switch {
	case runErr != nil:
		return runErr
	case waitErr != nil:
		return waitErr
	case ctx.Err() != nil:
		return nil
	case code != 0:
		return exitCodeError{code: code}
	}
	return nil
}

func openSource(ctx context.Context, opts runOptions, in io.Reader) (stream.Source, error) {
	if len(opts.compiler) == 0 {
		return stream.ReaderSource(in), nil
	}
	src, err := stream.StartCommand(ctx, opts.compiler[0], opts.compiler[1:]...)
	if err != nil {
		return nil, err
	}
	trace.Point(trace.FromContext(ctx), trace.ScopeSession, "compiler", strings.Join(opts.compiler, " "))
	return src, nil
}

// exitCode maps an error returned by the root command to a process status.
func exitCode(err error) int {
	var exitErr exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}
