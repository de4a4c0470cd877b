package rerun

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"wtsc/internal/trace"
	"wtsc/internal/watchsig"
)

var (
	// ErrNoCommand is returned when the spec names no command.
	ErrNoCommand = errors.New("rerun: no command to run")
	// ErrClosed is returned by HandleSignal once Run has returned.
	ErrClosed = errors.New("rerun: coordinator closed")

	errAlreadyRunning = errors.New("rerun: coordinator already running")
)

const (
	// DefaultDebounce is the quiet period after a successful cycle.
	DefaultDebounce = 250 * time.Millisecond
	// DefaultStopTimeout is how long a child gets to exit after an interrupt.
	DefaultStopTimeout = 3 * time.Second
)

// Options tune a Coordinator.
type Options struct {
	// Debounce delays a launch after a successful cycle; every further
	// success restarts the delay. Zero launches immediately.
	Debounce time.Duration
	// StopTimeout bounds the wait between interrupt and kill.
	StopTimeout time.Duration
	// KillOnChange stops the running child as soon as a new cycle starts
	// instead of when its replacement is launched.
	KillOnChange bool
	Reporter     Reporter
}

// Coordinator supervises one command across watch cycles. All state changes
// happen on the goroutine running Run; the other methods only queue work.
type Coordinator struct {
	launcher Launcher
	spec     Spec
	opts     Options

	signals    chan watchsig.Signal
	exits      chan uint64
	finish     chan struct{}
	finishOnce sync.Once
	closed     chan struct{}
	running    atomic.Bool
	waiters    sync.WaitGroup

	// owned by Run
	gen    uint64
	child  *child
	timer  *time.Timer
	cycle  *trace.Span
	cycles int
}

type child struct {
	gen  uint64
	proc Process
	span *trace.Span
}

// New returns a Coordinator that launches spec through l. A nil Launcher
// means ExecLauncher.
func New(l Launcher, spec Spec, opts Options) (*Coordinator, error) {
	if spec.Name == "" {
		return nil, ErrNoCommand
	}
	if l == nil {
		l = ExecLauncher{}
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = DefaultStopTimeout
	}
	return &Coordinator{
		launcher: l,
		spec:     spec,
		opts:     opts,
		signals:  make(chan watchsig.Signal, 16),
		exits:    make(chan uint64),
		finish:   make(chan struct{}),
		closed:   make(chan struct{}),
	}, nil
}

// HandleSignal queues sig for the loop. It implements watchsig.Handler.
func (c *Coordinator) HandleSignal(ctx context.Context, sig watchsig.Signal) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}
	select {
	case c.signals <- sig:
		return nil
	case <-c.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Finish tells the coordinator that no more output will arrive. Run stops
// the child and returns nil. Finish may be called more than once.
func (c *Coordinator) Finish() {
	c.finishOnce.Do(func() { close(c.finish) })
}

// Run is the coordinator loop. It returns nil after Finish and ctx.Err()
// when ctx is cancelled; in both cases the child has exited and no
// goroutine started by the coordinator is left.
func (c *Coordinator) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}
	t := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)

	defer c.waiters.Wait()
	defer close(c.closed)
	defer c.shutdown(t)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.finish:
			c.drain(ctx, t, parent)
			return nil
		case sig := <-c.signals:
			c.handle(ctx, t, parent, sig)
		case <-c.timerC():
			c.timer = nil
			if c.finished() {
				continue
			}
			trace.Point(t, trace.ScopeCycle, "debounce", "fired")
			c.relaunch(ctx, t, parent)
		case gen := <-c.exits:
			c.reap(gen)
		}
	}
}

func (c *Coordinator) handle(ctx context.Context, t trace.Tracer, parent uint64, sig watchsig.Signal) {
	switch sig.Kind {
	case watchsig.CycleStarted:
		c.beginCycle(t, parent)
		if c.disarm() {
			trace.Point(t, trace.ScopeCycle, "debounce", "cancelled by new cycle")
		}
		if c.opts.KillOnChange {
			c.stopChild(t)
		}
	case watchsig.CycleCompleted:
		c.endCycle(sig)
		if sig.Errors > 0 {
			if c.disarm() {
				trace.Point(t, trace.ScopeCycle, "debounce", "cancelled by failed cycle")
			}
			ev := Event{Kind: EventFailed, Errors: sig.Errors, Command: c.spec.String()}
			if c.child != nil {
				ev.Gen = c.child.gen
				ev.Pid = c.child.proc.Pid()
			}
			c.report(ev)
			return
		}
		if c.finished() {
			trace.Point(t, trace.ScopeCycle, "debounce", "skipped at end of input")
			return
		}
		if c.opts.Debounce == 0 {
			c.relaunch(ctx, t, parent)
			return
		}
		c.arm()
		trace.Point(t, trace.ScopeCycle, "debounce", "scheduled in "+c.opts.Debounce.String())
	}
}

// drain handles the signals queued before Finish. Failures are still
// reported and cycle spans closed; nothing is launched.
func (c *Coordinator) drain(ctx context.Context, t trace.Tracer, parent uint64) {
	c.disarm()
	for {
		select {
		case sig := <-c.signals:
			c.handle(ctx, t, parent, sig)
		default:
			return
		}
	}
}

// finished reports whether Finish has been called.
func (c *Coordinator) finished() bool {
	select {
	case <-c.finish:
		return true
	default:
		return false
	}
}

func (c *Coordinator) beginCycle(t trace.Tracer, parent uint64) {
	if c.cycle != nil {
		c.cycle.End("superseded")
	}
	c.cycles++
	c.cycle = trace.Begin(t, trace.ScopeCycle, "cycle", parent).
		WithExtra("n", strconv.Itoa(c.cycles))
}

func (c *Coordinator) endCycle(sig watchsig.Signal) {
	if c.cycle == nil {
		return
	}
	c.cycle.WithExtra("errors", strconv.Itoa(sig.Errors)).End(sig.String())
	c.cycle = nil
}

// arm (re)starts the debounce timer.
func (c *Coordinator) arm() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.NewTimer(c.opts.Debounce)
}

// disarm cancels a pending launch and reports whether one was pending.
func (c *Coordinator) disarm() bool {
	if c.timer == nil {
		return false
	}
	c.timer.Stop()
	c.timer = nil
	return true
}

func (c *Coordinator) timerC() <-chan time.Time {
	if c.timer == nil {
		return nil
	}
	return c.timer.C
}

// relaunch replaces the current generation with a new one.
func (c *Coordinator) relaunch(ctx context.Context, t trace.Tracer, parent uint64) {
	c.stopChild(t)
	if ctx.Err() != nil {
		return
	}

	c.gen++
	gen := c.gen
	proc, err := c.launcher.Launch(ctx, c.spec)
	if err != nil {
		trace.Point(t, trace.ScopeProcess, "launch-failed", err.Error())
		c.report(Event{Kind: EventLaunchFailed, Gen: gen, Err: err, Command: c.spec.String()})
		return
	}

	span := trace.Begin(t, trace.ScopeProcess, "process", parent).
		WithExtra("gen", strconv.FormatUint(gen, 10)).
		WithExtra("pid", strconv.Itoa(proc.Pid()))
	c.child = &child{gen: gen, proc: proc, span: span}

	c.waiters.Add(1)
	go c.watch(gen, proc)

	c.report(Event{Kind: EventLaunched, Gen: gen, Pid: proc.Pid(), Command: c.spec.String()})
}

// watch forwards the exit of one generation to the loop.
func (c *Coordinator) watch(gen uint64, p Process) {
	defer c.waiters.Done()
	select {
	case <-p.Done():
	case <-c.closed:
		return
	}
	select {
	case c.exits <- gen:
	case <-c.closed:
	}
}

// reap handles a child that exited on its own. Exits of generations that
// were already stopped are ignored; stopChild reported them.
func (c *Coordinator) reap(gen uint64) {
	if c.child == nil || c.child.gen != gen {
		return
	}
	ch := c.child
	c.child = nil
	c.finishChild(ch, EventExited)
}

// stopChild interrupts the current child, kills it after StopTimeout and
// waits until it is gone.
func (c *Coordinator) stopChild(t trace.Tracer) {
	ch := c.child
	if ch == nil {
		return
	}
	c.child = nil

	select {
	case <-ch.proc.Done():
		c.finishChild(ch, EventExited)
		return
	default:
	}

	kind := EventStopped
	if err := ch.proc.Interrupt(); err != nil {
		trace.Point(t, trace.ScopeProcess, "interrupt-failed", err.Error())
	}

	grace := time.NewTimer(c.opts.StopTimeout)
	defer grace.Stop()
	select {
	case <-ch.proc.Done():
	case <-grace.C:
		kind = EventKilled
		trace.Point(t, trace.ScopeProcess, "kill", "no exit after "+c.opts.StopTimeout.String())
		if err := ch.proc.Kill(); err != nil {
			trace.Point(t, trace.ScopeProcess, "kill-failed", err.Error())
		}
		<-ch.proc.Done()
	}
	c.finishChild(ch, kind)
}

func (c *Coordinator) finishChild(ch *child, kind EventKind) {
	code := ch.proc.ExitCode()
	ch.span.WithExtra("exit", strconv.Itoa(code)).End(kind.String())
	c.report(Event{
		Kind:     kind,
		Gen:      ch.gen,
		Pid:      ch.proc.Pid(),
		ExitCode: code,
		Err:      ch.proc.Err(),
		Command:  c.spec.String(),
	})
}

func (c *Coordinator) shutdown(t trace.Tracer) {
	c.disarm()
	c.stopChild(t)
	if c.cycle != nil {
		c.cycle.End("abandoned")
		c.cycle = nil
	}
}

func (c *Coordinator) report(ev Event) {
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(ev)
	}
}
