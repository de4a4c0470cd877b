package observ

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"wtsc/internal/watchsig"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(10 * time.Millisecond)

	a := tm.Begin("first")
	tm.End(a, "ok")
	b := tm.Begin("second")
	tm.End(b, "")
	tm.Begin("open")
	tm.End(a, "again") // already finished

	want := Report{
		TotalMS: 20,
		Phases: []PhaseReport{
			{Name: "first", DurationMS: 10, Note: "ok"},
			{Name: "second", DurationMS: 10},
		},
	}
	if diff := cmp.Diff(want, tm.Report()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if tm.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tm.Len())
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	tm.End(tm.Begin("cycle 1"), "2 errors")

	got := tm.Summary()
	for _, want := range []string{"timings:\n", "cycle 1", "1.00 ms", "// 2 errors", "total"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q missing %q", got, want)
		}
	}
}

func TestTimerEmpty(t *testing.T) {
	r := NewTimer().Report()
	if len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty timer report = %+v", r)
	}
}

func TestCycleRecorder(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	rec := NewCycleRecorder(tm)
	ctx := context.Background()

	signals := []watchsig.Signal{
		{Kind: watchsig.CycleStarted},
		{Kind: watchsig.CycleCompleted, Errors: 1},
		{Kind: watchsig.CycleStarted},
		{Kind: watchsig.CycleCompleted},
		{Kind: watchsig.CycleCompleted, Errors: 4}, // no start seen
	}
	for _, sig := range signals {
		if err := rec.HandleSignal(ctx, sig); err != nil {
			t.Fatalf("HandleSignal(%s): %v", sig, err)
		}
	}

	var names, notes []string
	for _, p := range tm.Report().Phases {
		names = append(names, p.Name)
		notes = append(notes, p.Note)
	}
	if diff := cmp.Diff([]string{"cycle 1", "cycle 2", "cycle 3"}, names); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1 error", "0 errors", "4 errors"}, notes, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("notes (-want +got):\n%s", diff)
	}
	if rec.Cycles() != 3 {
		t.Fatalf("Cycles = %d, want 3", rec.Cycles())
	}
}
