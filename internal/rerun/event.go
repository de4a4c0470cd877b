package rerun

// EventKind identifies a lifecycle event of the supervised command.
type EventKind uint8

const (
	// EventLaunched: a new generation started.
	EventLaunched EventKind = iota + 1
	// EventLaunchFailed: starting a generation failed.
	EventLaunchFailed
	// EventExited: the current generation exited on its own.
	EventExited
	// EventStopped: a generation exited after being interrupted.
	EventStopped
	// EventKilled: a generation ignored the interrupt and was killed.
	EventKilled
	// EventFailed: a cycle completed with errors; nothing was launched.
	EventFailed
)

// String returns the string representation of EventKind.
func (k EventKind) String() string {
	switch k {
	case EventLaunched:
		return "launched"
	case EventLaunchFailed:
		return "launch-failed"
	case EventExited:
		return "exited"
	case EventStopped:
		return "stopped"
	case EventKilled:
		return "killed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event describes one thing that happened to the supervised command.
type Event struct {
	Kind     EventKind
	Gen      uint64 // generation the event belongs to; 0 when no child exists
	Pid      int
	ExitCode int
	Errors   int // compile errors, for EventFailed
	Err      error
	Command  string
}

// Reporter receives coordinator events. Report is called from the
// coordinator's loop and should not block for long.
type Reporter interface {
	Report(ev Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ev Event)

// Report calls f.
func (f ReporterFunc) Report(ev Event) { f(ev) }
