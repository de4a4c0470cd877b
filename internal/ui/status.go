package ui

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"wtsc/internal/rerun"
)

type statusStyles struct {
	launch lipgloss.Style
	exit   lipgloss.Style
	fail   lipgloss.Style
	dim    lipgloss.Style
}

// StatusPrinter writes one line per re-run event. It implements rerun.Reporter.
type StatusPrinter struct {
	mu     sync.Mutex
	w      io.Writer
	width  int
	styles statusStyles
}

// NewStatusPrinter returns a printer writing to w. width is the terminal
// width used to truncate long command lines; 0 disables truncation.
func NewStatusPrinter(w io.Writer, colored bool, width int) *StatusPrinter {
	r := lipgloss.NewRenderer(w)
	if colored {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &StatusPrinter{
		w:     w,
		width: width,
		styles: statusStyles{
			launch: r.NewStyle().Foreground(lipgloss.Color("#5cd6d6")).Bold(true),
			exit:   r.NewStyle().Foreground(lipgloss.Color("#8c7359")),
			fail:   r.NewStyle().Foreground(lipgloss.Color("#d65c5c")).Bold(true),
			dim:    r.NewStyle().Foreground(lipgloss.Color("8")),
		},
	}
}

// Report implements rerun.Reporter.
func (p *StatusPrinter) Report(ev rerun.Event) {
	line := p.format(ev)
	if line == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	// Status lines are advisory; losing one must not stop the coordinator.
	_, _ = io.WriteString(p.w, line+"\n")
}

func (p *StatusPrinter) format(ev rerun.Event) string {
	s := p.styles
	switch ev.Kind {
	case rerun.EventLaunched:
		suffix := " (pid " + strconv.Itoa(ev.Pid) + ")"
		return s.launch.Render("▶ "+p.truncate(ev.Command, 2+runewidth.StringWidth(suffix))) + s.dim.Render(suffix)
	case rerun.EventExited:
		return s.exit.Render(fmt.Sprintf("■ exited %d", ev.ExitCode))
	case rerun.EventStopped:
		return s.exit.Render("■ stopped")
	case rerun.EventKilled:
		return s.fail.Render("✖ killed")
	case rerun.EventLaunchFailed:
		return s.fail.Render(fmt.Sprintf("✖ launch failed: %v", ev.Err))
	case rerun.EventFailed:
		noun := "errors"
		if ev.Errors == 1 {
			noun = "error"
		}
		msg := fmt.Sprintf("✖ %d %s", ev.Errors, noun)
		if ev.Gen > 0 {
			msg += ", keeping previous run"
		}
		return s.fail.Render(msg)
	default:
		return ""
	}
}

// truncate shortens cmd so that it fits next to reserved columns.
func (p *StatusPrinter) truncate(cmd string, reserved int) string {
	if p.width <= 0 {
		return cmd
	}
	room := p.width - reserved
	if room < 8 {
		room = 8
	}
	return runewidth.Truncate(cmd, room, "…")
}
