package observ

import (
	"context"
	"fmt"
	"sync"

	"wtsc/internal/watchsig"
)

// CycleRecorder times compile cycles from watch-mode signals.
// It implements watchsig.Handler.
type CycleRecorder struct {
	timer *Timer

	mu      sync.Mutex
	current int
	cycles  int
}

// NewCycleRecorder returns a recorder that stores phases in timer.
func NewCycleRecorder(timer *Timer) *CycleRecorder {
	return &CycleRecorder{timer: timer, current: -1}
}

// HandleSignal implements watchsig.Handler.
func (r *CycleRecorder) HandleSignal(_ context.Context, sig watchsig.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch sig.Kind {
	case watchsig.CycleStarted:
		r.begin()
	case watchsig.CycleCompleted:
		// A completion without a visible start still counts as a cycle,
		// e.g. when the first banner was cleared away.
		if r.current < 0 {
			r.begin()
		}
		r.timer.End(r.current, errorNote(sig.Errors))
		r.current = -1
	}
	return nil
}

// Cycles returns how many cycles were started.
func (r *CycleRecorder) Cycles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles
}

func (r *CycleRecorder) begin() {
	r.cycles++
	r.current = r.timer.Begin(fmt.Sprintf("cycle %d", r.cycles))
}

func errorNote(n int) string {
	if n == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", n)
}
