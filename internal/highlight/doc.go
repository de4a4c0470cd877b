// Package highlight rewrites chunks of compiler output with a fixed, ordered
// set of regular-expression rules and paints the result for a terminal.
//
// A Filter is stateless: every chunk is rewritten on its own, so an
// occurrence split across two reads is left as plain text.
package highlight
