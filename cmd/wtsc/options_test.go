package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"wtsc/internal/rerun"
)

func parsedCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "wtsc"}
	registerRootFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return cmd
}

func boolPtr(b bool) *bool { return &b }

func TestResolveOptionsDefaults(t *testing.T) {
	opts, err := resolveOptions(parsedCommand(t), nil, nil)
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if opts.color != colorAuto || opts.noClear || opts.killOnChange || len(opts.exec) != 0 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.debounce != rerun.DefaultDebounce || opts.stopTimeout != rerun.DefaultStopTimeout {
		t.Fatalf("durations = %v/%v", opts.debounce, opts.stopTimeout)
	}
	if opts.trace.level != "off" || opts.trace.mode != "stream" {
		t.Fatalf("trace = %+v", opts.trace)
	}
}

func TestResolveOptionsPrecedence(t *testing.T) {
	cfg := &fileConfig{
		Path:   "wtsc.toml",
		Output: outputConfig{Color: "on", NoClear: boolPtr(true)},
		Rerun: rerunConfig{
			Exec:         "node app.js",
			Debounce:     "2s",
			StopTimeout:  "5s",
			KillOnChange: boolPtr(true),
			Env:          map[string]string{"PORT": "1"},
		},
		Trace: traceConfig{Level: "detail"},
	}
	cmd := parsedCommand(t, "--color=off", "--debounce=100ms", "--kill-on-change=false", "--trace-level=debug")

	opts, err := resolveOptions(cmd, cfg, []string{"tsc", "-w"})
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	got := struct {
		Color        colorMode
		NoClear      bool
		Exec         []string
		Env          []string
		Debounce     time.Duration
		StopTimeout  time.Duration
		KillOnChange bool
		TraceLevel   string
		Compiler     []string
	}{opts.color, opts.noClear, opts.exec, opts.env, opts.debounce, opts.stopTimeout, opts.killOnChange, opts.trace.level, opts.compiler}
	want := struct {
		Color        colorMode
		NoClear      bool
		Exec         []string
		Env          []string
		Debounce     time.Duration
		StopTimeout  time.Duration
		KillOnChange bool
		TraceLevel   string
		Compiler     []string
	}{colorOff, true, []string{"node", "app.js"}, []string{"PORT=1"}, 100 * time.Millisecond, 5 * time.Second, false, "debug", []string{"tsc", "-w"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}
}

func TestResolveOptionsErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  *fileConfig
		args []string
	}{
		{"bad color", nil, []string{"--color=sometimes"}},
		{"bad config duration", &fileConfig{Path: "wtsc.toml", Rerun: rerunConfig{Debounce: "soon"}}, nil},
		{"negative debounce", nil, []string{"--debounce=-1s"}},
		{"exec expands to nothing", nil, []string{"--exec", "$WTSC_TEST_UNSET"}},
		{"unterminated quote", nil, []string{"--exec", `node "app.js`}},
	}
	for _, tc := range cases {
		if _, err := resolveOptions(parsedCommand(t, tc.args...), tc.cfg, nil); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestSplitCommand(t *testing.T) {
	t.Setenv("WTSC_TEST_ENTRY", "dist/main.js")
	cases := []struct {
		line  string
		extra map[string]string
		want  []string
	}{
		{"node app.js", nil, []string{"node", "app.js"}},
		{`node "my app.js" --flag='a b'`, nil, []string{"node", "my app.js", "--flag=a b"}},
		{"node $WTSC_TEST_ENTRY", nil, []string{"node", "dist/main.js"}},
		{"node --port=$PORT", map[string]string{"PORT": "9000"}, []string{"node", "--port=9000"}},
	}
	for _, tc := range cases {
		got, err := splitCommand(tc.line, tc.extra)
		if err != nil {
			t.Fatalf("splitCommand(%q): %v", tc.line, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("splitCommand(%q) (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestRerunSpec(t *testing.T) {
	opts := runOptions{exec: []string{"node", "app.js"}, dir: "/srv", env: []string{"A=1"}}
	spec := opts.rerunSpec()
	if spec.Name != "node" || spec.Dir != "/srv" || spec.String() != "node app.js" {
		t.Fatalf("spec = %+v", spec)
	}
	if (runOptions{}).rerunSpec().Name != "" {
		t.Fatalf("expected empty spec without --exec")
	}
}

func TestReadColorMode(t *testing.T) {
	for in, want := range map[string]colorMode{"": colorAuto, "AUTO": colorAuto, "on": colorOn, " off ": colorOff} {
		got, err := readColorMode(in)
		if err != nil || got != want {
			t.Fatalf("readColorMode(%q) = %q, %v", in, got, err)
		}
	}
	if shouldUseColor(colorOn, nil) != true || shouldUseColor(colorOff, nil) != false {
		t.Fatalf("explicit modes must not consult the terminal")
	}
}
