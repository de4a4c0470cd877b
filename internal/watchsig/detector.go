package watchsig

import (
	"regexp"
	"sort"
	"strconv"
)

var (
	startPattern      = regexp.MustCompile(`(?i)file change detected|starting compilation in watch mode|starting incremental compilation`)
	completePattern   = regexp.MustCompile(`(?i)compilation complete|found (\d+) errors?`)
	diagnosticPattern = regexp.MustCompile(`(?i)error TS\d+:`)
)

type markKind uint8

const (
	markStart markKind = iota
	markDiagnostic
	markComplete
)

type mark struct {
	kind   markKind
	offset int
	found  int // -1 unless a "Found N errors" summary
}

// Detector turns chunks into Signals. It only remembers how many diagnostics
// the current cycle printed; a marker split across two chunks is not seen.
//
// A Detector is not safe for concurrent use.
type Detector struct {
	diagnostics int
}

// NewDetector returns a Detector with a zero diagnostic count.
func NewDetector() *Detector {
	return &Detector{}
}

// Scan returns the signals found in chunk, in text order.
//
// Start markers that follow each other within chunk collapse into one
// CycleStarted, so tsc's "File change detected. Starting incremental
// compilation..." yields a single signal. A completion reports the count from a "Found N errors" summary when
// there is one, and otherwise the number of diagnostics seen since the start.
func (d *Detector) Scan(chunk string) []Signal {
	marks := collectMarks(chunk)
	if len(marks) == 0 {
		return nil
	}

	var out []Signal
	for i, m := range marks {
		switch m.kind {
		case markStart:
			d.diagnostics = 0
			if i > 0 && marks[i-1].kind == markStart {
				continue
			}
			out = append(out, Signal{Kind: CycleStarted, Offset: m.offset})
		case markDiagnostic:
			d.diagnostics++
		case markComplete:
			errs := d.diagnostics
			if m.found >= 0 {
				errs = m.found
			}
			d.diagnostics = 0
			out = append(out, Signal{Kind: CycleCompleted, Errors: errs, Offset: m.offset})
		}
	}
	return out
}

func collectMarks(chunk string) []mark {
	var marks []mark
	for _, loc := range startPattern.FindAllStringIndex(chunk, -1) {
		marks = append(marks, mark{kind: markStart, offset: loc[0], found: -1})
	}
	for _, loc := range diagnosticPattern.FindAllStringIndex(chunk, -1) {
		marks = append(marks, mark{kind: markDiagnostic, offset: loc[0], found: -1})
	}
	for _, loc := range completePattern.FindAllStringSubmatchIndex(chunk, -1) {
		found := -1
		if loc[2] >= 0 {
			if n, err := strconv.Atoi(chunk[loc[2]:loc[3]]); err == nil {
				found = n
			}
		}
		marks = append(marks, mark{kind: markComplete, offset: loc[0], found: found})
	}
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].offset < marks[j].offset })
	return marks
}
