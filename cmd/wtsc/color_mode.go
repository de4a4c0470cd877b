package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"wtsc/internal/ui"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func shouldUseColor(mode colorMode, out *os.File) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return ui.IsTerminal(out)
	}
}

// colorForWriter resolves mode for w. Writers that are not files never count
// as terminals.
func colorForWriter(mode colorMode, w io.Writer) bool {
	if mode != colorAuto {
		return mode == colorOn
	}
	f, ok := w.(*os.File)
	return ok && shouldUseColor(mode, f)
}
