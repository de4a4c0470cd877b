package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"wtsc/internal/testkit"
	"wtsc/internal/version"
)

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := version.Info{Version: "1.2.3", GitCommit: "abc123"}
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true, showDate: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if payload.Tool != "wtsc" || payload.GitCommit != "abc123" || payload.BuildDate != "unknown" || payload.GitMessage != "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestRenderVersionPretty(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, version.Info{Version: "dev"}, versionOptions{showMessage: true})
	got := buf.String()
	if !strings.HasPrefix(got, "wtsc dev\n") || !strings.Contains(got, "message: unknown") {
		t.Fatalf("pretty output = %q", got)
	}
	if strings.Contains(got, "commit:") {
		t.Fatalf("hash shown without --hash: %q", got)
	}
}

func TestRenderVersionPrettyHonorsColorMode(t *testing.T) {
	info := version.Info{Version: "1.2.3"}
	cases := []struct {
		mode colorMode
		want bool
	}{
		{colorOn, true},
		{colorOff, false},
		// a buffer is never a terminal
		{colorAuto, false},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		opts := versionOptions{colored: colorForWriter(tc.mode, &buf)}
		renderVersionPretty(&buf, info, opts)
		if got := strings.Contains(buf.String(), "\x1b["); got != tc.want {
			t.Fatalf("--color=%s: escapes present = %v, want %v (%q)", tc.mode, got, tc.want, buf.String())
		}
		if testkit.StripSGR(buf.String()) != "wtsc 1.2.3\n" {
			t.Fatalf("--color=%s: text = %q", tc.mode, buf.String())
		}
	}
}
