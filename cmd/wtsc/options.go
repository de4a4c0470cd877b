package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"wtsc/internal/rerun"
)

var errEmptyExec = errors.New("--exec names no command")

// runOptions is the merged view of flags, wtsc.toml and defaults.
type runOptions struct {
	color    colorMode
	noClear  bool
	timings  bool
	compiler []string

	exec         []string
	dir          string
	env          []string
	debounce     time.Duration
	stopTimeout  time.Duration
	killOnChange bool

	trace traceOptions
}

type traceOptions struct {
	output    string
	level     string
	mode      string
	format    string
	ringSize  int
	heartbeat time.Duration
}

// resolveOptions applies explicit flags over cfg over flag defaults.
func resolveOptions(cmd *cobra.Command, cfg *fileConfig, args []string) (runOptions, error) {
	if cfg == nil {
		cfg = &fileConfig{}
	}
	opts := runOptions{compiler: args}
	var err error

	colorValue, err := stringOption(cmd, "color", cfg.Output.Color)
	if err != nil {
		return opts, err
	}
	if opts.color, err = readColorMode(colorValue); err != nil {
		return opts, err
	}
	if opts.noClear, err = boolOption(cmd, "no-clear", cfg.Output.NoClear); err != nil {
		return opts, err
	}
	if opts.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return opts, err
	}

	execLine, err := stringOption(cmd, "exec", cfg.Rerun.Exec)
	if err != nil {
		return opts, err
	}
	opts.env = cfg.Rerun.envList()
	if strings.TrimSpace(execLine) != "" {
		if opts.exec, err = splitCommand(execLine, cfg.Rerun.Env); err != nil {
			return opts, err
		}
	}
	opts.dir = cfg.Rerun.Dir
	if opts.debounce, err = durationOption(cmd, "debounce", cfg.Path, "[rerun].debounce", cfg.Rerun.Debounce); err != nil {
		return opts, err
	}
	if opts.stopTimeout, err = durationOption(cmd, "stop-timeout", cfg.Path, "[rerun].stop_timeout", cfg.Rerun.StopTimeout); err != nil {
		return opts, err
	}
	if opts.killOnChange, err = boolOption(cmd, "kill-on-change", cfg.Rerun.KillOnChange); err != nil {
		return opts, err
	}

	if opts.trace, err = resolveTraceOptions(cmd, cfg.Trace); err != nil {
		return opts, err
	}
	return opts, nil
}

func resolveTraceOptions(cmd *cobra.Command, cfg traceConfig) (traceOptions, error) {
	var (
		opts traceOptions
		err  error
	)
	if opts.output, err = stringOption(cmd, "trace", cfg.Output); err != nil {
		return opts, err
	}
	if opts.level, err = stringOption(cmd, "trace-level", cfg.Level); err != nil {
		return opts, err
	}
	if opts.format, err = stringOption(cmd, "trace-format", cfg.Format); err != nil {
		return opts, err
	}
	if opts.mode, err = cmd.Flags().GetString("trace-mode"); err != nil {
		return opts, err
	}
	if opts.ringSize, err = cmd.Flags().GetInt("trace-ring-size"); err != nil {
		return opts, err
	}
	if opts.heartbeat, err = cmd.Flags().GetDuration("trace-heartbeat"); err != nil {
		return opts, err
	}
	return opts, nil
}

// rerunSpec builds the command the coordinator launches. Output of the
// re-run command goes straight to the terminal, unfiltered.
func (o runOptions) rerunSpec() rerun.Spec {
	if len(o.exec) == 0 {
		return rerun.Spec{}
	}
	return rerun.Spec{
		Name:   o.exec[0],
		Args:   o.exec[1:],
		Dir:    o.dir,
		Env:    o.env,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (o runOptions) rerunOptions() rerun.Options {
	return rerun.Options{
		Debounce:     o.debounce,
		StopTimeout:  o.stopTimeout,
		KillOnChange: o.killOnChange,
	}
}

// splitCommand splits line into words the way a POSIX shell would, expanding
// variables from extra first and then from the process environment.
func splitCommand(line string, extra map[string]string) ([]string, error) {
	var parsed []*syntax.Word
	err := syntax.NewParser().Words(strings.NewReader(line), func(w *syntax.Word) bool {
		parsed = append(parsed, w)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parse --exec %q: %w", line, err)
	}
	cfg := &expand.Config{Env: expand.FuncEnviron(func(name string) string {
		if v, ok := extra[name]; ok {
			return v
		}
		return os.Getenv(name)
	})}
	words, err := expand.Fields(cfg, parsed...)
	if err != nil {
		return nil, fmt.Errorf("expand --exec %q: %w", line, err)
	}
	if len(words) == 0 || words[0] == "" {
		return nil, errEmptyExec
	}
	return words, nil
}

func stringOption(cmd *cobra.Command, name, fromFile string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) && fromFile != "" {
		return fromFile, nil
	}
	return v, nil
}

func boolOption(cmd *cobra.Command, name string, fromFile *bool) (bool, error) {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) && fromFile != nil {
		return *fromFile, nil
	}
	return v, nil
}

func durationOption(cmd *cobra.Command, name, path, key, fromFile string) (time.Duration, error) {
	v, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) && fromFile != "" {
		return parseConfigDuration(path, key, fromFile)
	}
	if v < 0 {
		return 0, fmt.Errorf("--%s must not be negative", name)
	}
	return v, nil
}
