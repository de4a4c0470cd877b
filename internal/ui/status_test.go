package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"wtsc/internal/rerun"
	"wtsc/internal/testkit"
)

func plain(s string) string { return testkit.StripSGR(s) }

func TestStatusPrinterLines(t *testing.T) {
	cases := []struct {
		ev   rerun.Event
		want string
	}{
		{rerun.Event{Kind: rerun.EventLaunched, Gen: 1, Pid: 42, Command: "node dist/main.js"}, "▶ node dist/main.js (pid 42)"},
		{rerun.Event{Kind: rerun.EventExited, Gen: 1, ExitCode: 2}, "■ exited 2"},
		{rerun.Event{Kind: rerun.EventStopped, Gen: 1}, "■ stopped"},
		{rerun.Event{Kind: rerun.EventKilled, Gen: 1}, "✖ killed"},
		{rerun.Event{Kind: rerun.EventLaunchFailed, Gen: 2, Err: errors.New("no such file")}, "✖ launch failed: no such file"},
		{rerun.Event{Kind: rerun.EventFailed, Gen: 1, Errors: 3}, "✖ 3 errors, keeping previous run"},
		{rerun.Event{Kind: rerun.EventFailed, Errors: 1}, "✖ 1 error"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		NewStatusPrinter(&buf, false, 0).Report(tc.ev)
		if got := plain(buf.String()); got != tc.want+"\n" {
			t.Fatalf("%s: got %q, want %q", tc.ev.Kind, got, tc.want+"\n")
		}
	}
}

func TestStatusPrinterTruncatesCommand(t *testing.T) {
	var buf bytes.Buffer
	p := NewStatusPrinter(&buf, false, 30)
	p.Report(rerun.Event{Kind: rerun.EventLaunched, Pid: 7, Command: "node --enable-source-maps dist/very/long/path/main.js"})

	line := strings.TrimSuffix(plain(buf.String()), "\n")
	if !strings.Contains(line, "…") {
		t.Fatalf("expected truncation marker in %q", line)
	}
	if !strings.HasSuffix(line, "(pid 7)") {
		t.Fatalf("pid suffix lost in %q", line)
	}
	if w := runewidth.StringWidth(line); w > 30 {
		t.Fatalf("line width %d exceeds 30: %q", w, line)
	}
}

func TestStatusPrinterColored(t *testing.T) {
	var buf bytes.Buffer
	NewStatusPrinter(&buf, true, 0).Report(rerun.Event{Kind: rerun.EventKilled})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected escape sequences, got %q", buf.String())
	}
	if plain(buf.String()) != "✖ killed\n" {
		t.Fatalf("text = %q", plain(buf.String()))
	}
}
