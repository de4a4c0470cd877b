package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wtsc/internal/rerun"
	"wtsc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wtsc [flags] [-- compiler [args...]]",
	Short: "Highlight TypeScript compiler output",
	Long: `wtsc colors the diagnostics of tsc and similar compilers.

Pipe a compiler into it (tsc -w | wtsc) or let wtsc start the compiler
(wtsc -- tsc -w). With --exec, wtsc re-runs a command after every
compile cycle that finishes without errors.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	registerRootFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
}

func registerRootFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("config", "", "path to wtsc.toml (default: nearest one above the working directory)")
	pf.Bool("timings", false, "print per-cycle timings on exit")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept in the trace ring")
	pf.Duration("trace-heartbeat", 0, "emit a trace heartbeat at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	f := cmd.Flags()
	f.String("exec", "", "command to re-run after each successful compile cycle")
	f.Duration("debounce", rerun.DefaultDebounce, "wait this long after a successful cycle before re-running")
	f.Duration("stop-timeout", rerun.DefaultStopTimeout, "grace period between interrupting and killing the previous run")
	f.Bool("kill-on-change", false, "stop the running command as soon as a new cycle starts")
	f.Bool("no-clear", false, "keep the compiler's clear-screen sequences")
	// Everything after the first positional argument belongs to the compiler.
	f.SetInterspersed(false)
}

func main() {
	rootCmd.Version = version.Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// The compiler already printed why it failed.
		var compilerExit exitCodeError
		if !errors.As(err, &compilerExit) {
			fmt.Fprintf(os.Stderr, "wtsc: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}
