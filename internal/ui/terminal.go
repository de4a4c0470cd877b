package ui

import (
	"os"

	"fortio.org/safecast"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil {
		return false
	}
	return term.IsTerminal(fd)
}

// Width returns the column count of the terminal behind f, or 0 when f is
// not a terminal.
func Width(f *os.File) int {
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w < 0 {
		return 0
	}
	return w
}
