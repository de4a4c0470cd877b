package highlight

import "strings"

// clearScreen is the full terminal reset compilers emit between watch cycles.
const clearScreen = "\x1bc"

// Filter applies the rule set to chunks of compiler output.
type Filter struct {
	palette   *Palette
	rules     []Rule
	keepClear bool
}

// Option configures a Filter.
type Option func(*Filter)

// KeepClearScreen leaves the compiler's clear-screen sequence in the output.
func KeepClearScreen(keep bool) Option {
	return func(f *Filter) { f.keepClear = keep }
}

// WithRules replaces the rule set. It exists for tests and callers that want
// a subset of the default rules.
func WithRules(rules []Rule) Option {
	return func(f *Filter) { f.rules = rules }
}

// NewFilter returns a filter using the fixed rule set painted with p.
// A nil palette paints nothing.
func NewFilter(p *Palette, opts ...Option) *Filter {
	if p == nil {
		p = NewPalette(false)
	}
	f := &Filter{palette: p, rules: Rules(p)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply rewrites one chunk. Every rule sees the output of the rules before
// it; the result is trimmed, painted in the base color and terminated by a
// single newline.
func (f *Filter) Apply(chunk string) string {
	out := chunk
	for _, r := range f.rules {
		out = r.Apply(out)
	}
	out = f.palette.Paint(StyleBase, strings.TrimSpace(out)) + "\n"
	if !f.keepClear {
		out = strings.ReplaceAll(out, clearScreen, "")
	}
	return out
}
