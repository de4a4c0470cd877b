// Package testkit holds assertions shared by the output-producing packages.
package testkit

import (
	"fmt"
	"regexp"
	"strings"
)

var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const (
	clearScreen = "\x1bc"
	sgrReset    = "\x1b[0m"
)

// StripSGR removes color and style escape sequences from s.
func StripSGR(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

// CheckFilteredChunk verifies the shape every filtered chunk must have:
//  1. a trailing newline
//  2. no clear-screen sequence unless keepClear is set
//  3. when colored, a closing reset
func CheckFilteredChunk(out string, colored, keepClear bool) error {
	if !strings.HasSuffix(out, "\n") {
		return fmt.Errorf("chunk %q does not end with a newline", out)
	}
	if !keepClear && strings.Contains(out, clearScreen) {
		return fmt.Errorf("chunk %q still contains a clear-screen sequence", out)
	}

	text := strings.TrimSuffix(StripSGR(out), "\n")
	if text == "" {
		if out != "\n" {
			return fmt.Errorf("empty chunk rendered as %q", out)
		}
		return nil
	}

	hasSGR := sgrPattern.MatchString(out)
	switch {
	case colored && !strings.HasSuffix(out, sgrReset+"\n"):
		return fmt.Errorf("colored chunk %q does not end with a reset", out)
	case !colored && hasSGR:
		return fmt.Errorf("uncolored chunk %q contains escape sequences", out)
	}
	return nil
}
