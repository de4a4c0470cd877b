package watchsig

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDetectorWatchSession(t *testing.T) {
	d := NewDetector()
	chunks := []struct {
		in   string
		want []Signal
	}{
		{
			in:   "[9:00:00 AM] Starting compilation in watch mode...\n",
			want: []Signal{{Kind: CycleStarted}},
		},
		{
			in: "src/a.ts(1,1): error TS2304: Cannot find name 'x'.\n" +
				"src/a.ts(2,1): error TS2304: Cannot find name 'y'.\n",
		},
		{
			in:   "[9:00:02 AM] Found 2 errors. Watching for file changes.\n",
			want: []Signal{{Kind: CycleCompleted, Errors: 2}},
		},
		{
			in: "[9:01:00 AM] File change detected. Starting incremental compilation...\n" +
				"[9:01:01 AM] Found 0 errors. Watching for file changes.\n",
			want: []Signal{{Kind: CycleStarted}, {Kind: CycleCompleted, Errors: 0}},
		},
	}
	for i, tc := range chunks {
		got := d.Scan(tc.in)
		if diff := cmp.Diff(tc.want, got, cmpopts.IgnoreFields(Signal{}, "Offset"), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("chunk %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDetectorCountsDiagnosticsForLegacyCompletion(t *testing.T) {
	d := NewDetector()
	d.Scan("10:00:00 - File change detected. Starting incremental compilation...\n")
	d.Scan("a.ts(1,1): error TS1005: ';' expected.\n")
	got := d.Scan("b.ts(2,2): error TS1005: ';' expected.\n10:00:01 - Compilation complete. Watching for file changes.\n")
	if len(got) != 1 || got[0].Kind != CycleCompleted || got[0].Errors != 2 {
		t.Fatalf("Scan = %v, want one completion with 2 errors", got)
	}

	// the counter resets with the next cycle
	d.Scan("10:00:05 - File change detected. Starting incremental compilation...\n")
	got = d.Scan("10:00:06 - Compilation complete. Watching for file changes.\n")
	if len(got) != 1 || !got[0].Success() {
		t.Fatalf("Scan = %v, want a successful completion", got)
	}
}

func TestDetectorOffsetsAreInTextOrder(t *testing.T) {
	chunk := "Found 1 error. Watching for file changes.\nFile change detected.\n"
	got := NewDetector().Scan(chunk)
	if len(got) != 2 {
		t.Fatalf("Scan = %v", got)
	}
	if got[0].Kind != CycleCompleted || got[0].Errors != 1 || got[0].Offset != 0 {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Kind != CycleStarted || got[1].Offset <= got[0].Offset {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestDetectorSplitCompletionDoesNotHideNextStart(t *testing.T) {
	d := NewDetector()
	chunks := []struct {
		in   string
		want []Signal
	}{
		{
			in:   "[10:00:00 AM] File change detected. Starting incremental compilation...\n",
			want: []Signal{{Kind: CycleStarted}},
		},
		{in: "[10:00:01 AM] Fou"},
		{in: "nd 0 errors. Watching for file changes.\n"},
		{
			in:   "[10:00:05 AM] File change detected. Starting incremental compilation...\n",
			want: []Signal{{Kind: CycleStarted}},
		},
		{
			in:   "[10:00:06 AM] Found 0 errors. Watching for file changes.\n",
			want: []Signal{{Kind: CycleCompleted}},
		},
	}
	for i, tc := range chunks {
		got := d.Scan(tc.in)
		if diff := cmp.Diff(tc.want, got, cmpopts.IgnoreFields(Signal{}, "Offset"), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("chunk %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDetectorStartsOnlyCollapseWithinChunk(t *testing.T) {
	d := NewDetector()
	cases := []struct {
		in    string
		count int
	}{
		{"File change detected. Starting incremental compilation...\n", 1},
		{"Starting incremental compilation...\n", 1},
		{"File change detected.\na.ts(1,1): error TS1005: ';' expected.\nFile change detected.\n", 2},
	}
	for _, tc := range cases {
		got := d.Scan(tc.in)
		if len(got) != tc.count {
			t.Fatalf("Scan(%q) = %v, want %d starts", tc.in, got, tc.count)
		}
		for _, sig := range got {
			if sig.Kind != CycleStarted {
				t.Fatalf("Scan(%q) = %v, want only starts", tc.in, got)
			}
		}
	}
}

func TestDetectorIgnoresPlainOutput(t *testing.T) {
	if got := NewDetector().Scan("Version 5.4.5\n"); got != nil {
		t.Fatalf("Scan = %v, want nil", got)
	}
}

func TestHandlerFunc(t *testing.T) {
	var got Signal
	h := HandlerFunc(func(_ context.Context, sig Signal) error {
		got = sig
		return nil
	})
	want := Signal{Kind: CycleCompleted, Errors: 3}
	if err := h.HandleSignal(context.Background(), want); err != nil {
		t.Fatalf("HandleSignal: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if want.String() != "completed (3 errors)" {
		t.Fatalf("String = %q", want.String())
	}
}
