package highlight

import (
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
)

// StyleName identifies one entry of the palette.
type StyleName uint8

const (
	StyleBase StyleName = iota
	StyleFile
	StyleFileBold
	StyleLine
	StyleEnd
	StyleModule
	StyleAny
	StyleParam
	StyleProp
	StyleType
)

// String returns the palette key of the style.
func (n StyleName) String() string {
	switch n {
	case StyleBase:
		return "base"
	case StyleFile:
		return "file"
	case StyleFileBold:
		return "file-bold"
	case StyleLine:
		return "line"
	case StyleEnd:
		return "end"
	case StyleModule:
		return "module"
	case StyleAny:
		return "any"
	case StyleParam:
		return "param"
	case StyleProp:
		return "prop"
	case StyleType:
		return "type"
	default:
		return "unknown"
	}
}

// hue describes a palette entry in HSL, with s and l in percent.
type hue struct {
	h, s, l float64
	bold    bool
}

var hues = map[StyleName]hue{
	StyleFile:     {h: 0, s: 60, l: 60},
	StyleFileBold: {h: 0, s: 60, l: 60, bold: true},
	StyleLine:     {h: 130, s: 60, l: 60, bold: true},
	StyleEnd:      {h: 30, s: 30, l: 40},
	StyleModule:   {h: 180, s: 60, l: 60},
	StyleAny:      {h: 40, s: 60, l: 60},
	StyleParam:    {h: 60, s: 60, l: 60},
	StyleProp:     {h: 200, s: 60, l: 60},
	StyleType:     {h: 120, s: 60, l: 60},
}

// Style paints text with one palette color. The zero Style leaves text as is.
type Style struct {
	c *color.Color
	// resume reopens the enclosing base color once c has reset the terminal.
	resume string
}

// Paint wraps text in the style's escape sequences. Empty text stays empty.
func (s Style) Paint(text string) string {
	if s.c == nil || text == "" {
		return text
	}
	return s.c.Sprint(text) + s.resume
}

// Palette holds every style used by the rule set.
type Palette struct {
	enabled bool
	base    Style
	styles  map[StyleName]Style
}

// NewPalette builds the palette. When enabled is false every style is a no-op,
// regardless of NO_COLOR or whether stdout is a terminal.
func NewPalette(enabled bool) *Palette {
	p := &Palette{enabled: enabled, styles: make(map[StyleName]Style, len(hues))}
	if !enabled {
		return p
	}

	base := color.New(color.FgHiBlack)
	base.EnableColor()
	p.base = Style{c: base}
	resume := openSequence(base)

	for name, h := range hues {
		r, g, b := RGB(h.h, h.s, h.l)
		c := color.RGB(r, g, b)
		if h.bold {
			c.Add(color.Bold)
		}
		c.EnableColor()
		p.styles[name] = Style{c: c, resume: resume}
	}
	return p
}

// Enabled reports whether the palette emits escape sequences.
func (p *Palette) Enabled() bool { return p != nil && p.enabled }

// Style returns the named style. Unknown names and StyleBase inside rules
// yield a style that leaves text unchanged.
func (p *Palette) Style(name StyleName) Style {
	if p == nil {
		return Style{}
	}
	if name == StyleBase {
		return p.base
	}
	return p.styles[name]
}

// Paint is shorthand for p.Style(name).Paint(text).
func (p *Palette) Paint(name StyleName, text string) string {
	return p.Style(name).Paint(text)
}

// RGB converts an HSL triple (hue in degrees, saturation and lightness in
// percent) to 8-bit RGB channels.
func RGB(h, s, l float64) (r, g, b int) {
	c := colorful.Hsl(h, s/100, l/100).Clamped()
	r8, g8, b8 := c.RGB255()
	return int(r8), int(g8), int(b8)
}

// openSequence returns the escape sequence c writes before its text.
func openSequence(c *color.Color) string {
	const marker = "\x00"
	open, _, _ := strings.Cut(c.Sprint(marker), marker)
	return open
}
