package highlight

import (
	"regexp"
	"strings"
)

// Replacer builds the replacement for one match. groups holds the capture
// groups in order; a group that did not take part in the match is "".
type Replacer func(groups []string) string

// Rule is one rewrite step of the pipeline.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// Global replaces every match; otherwise only the first match is replaced.
	Global  bool
	Replace Replacer
}

// Apply rewrites s and returns the result. s is returned unchanged when the
// pattern does not match.
func (r Rule) Apply(s string) string {
	limit := 1
	if r.Global {
		limit = -1
	}
	matches := r.Pattern.FindAllStringSubmatchIndex(s, limit)
	if len(matches) == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, m := range matches {
		sb.WriteString(s[last:m[0]])
		groups := make([]string, len(m)/2-1)
		for i := range groups {
			lo, hi := m[2*i+2], m[2*i+3]
			if lo >= 0 {
				groups[i] = s[lo:hi]
			}
		}
		sb.WriteString(r.Replace(groups))
		last = m[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}
