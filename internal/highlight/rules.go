package highlight

import "regexp"

var (
	changeDetectedPattern = regexp.MustCompile(`(?mi)(\s|\n|^)*(.*?file change detected.*?)$(\s|\n)*`)
	compileDonePattern    = regexp.MustCompile(`(?mi)(\s|\n|^)*(.*?Compilation complete.*?)$(\s|\n)*`)
	propertyPattern       = regexp.MustCompile(`(?i)Property '([^']*)'`)
	typePattern           = regexp.MustCompile(`(?i)type '([^']*)'`)
	modulePattern         = regexp.MustCompile(`(?i)module '([^']*)'`)
	anyTypePattern        = regexp.MustCompile(`'any' type`)
	parameterPattern      = regexp.MustCompile(`Parameter '([^']*)'`)
	declaredPattern       = regexp.MustCompile(`'([^']*)' is declared`)
	errorCodePattern      = regexp.MustCompile(`(?i)Error TS\d+: `)
	locationPattern       = regexp.MustCompile(`(?m)^([^(\n]+/)?([^(\n)]+)\((\d+),(\d+)\):`)
)

// Rules returns the fixed rule set in application order, painting with p.
func Rules(p *Palette) []Rule {
	return []Rule{
		{
			Name:    "change-detected",
			Pattern: changeDetectedPattern,
			Global:  true,
			Replace: func([]string) string {
				return p.Paint(StyleEnd, "<<< change detected") + "\n"
			},
		},
		{
			Name:    "compilation-complete",
			Pattern: compileDonePattern,
			Global:  true,
			Replace: func([]string) string {
				return p.Paint(StyleEnd, ">>> done") + "\n"
			},
		},
		{
			Name:    "property",
			Pattern: propertyPattern,
			Global:  true,
			Replace: func(g []string) string {
				return "Property " + p.Paint(StyleProp, g[0])
			},
		},
		{
			Name:    "type",
			Pattern: typePattern,
			Global:  true,
			Replace: func(g []string) string {
				return "type " + p.Paint(StyleType, g[0])
			},
		},
		{
			Name:    "module",
			Pattern: modulePattern,
			Global:  true,
			Replace: func(g []string) string {
				return "module " + p.Paint(StyleModule, g[0])
			},
		},
		{
			Name:    "any-type",
			Pattern: anyTypePattern,
			Replace: func([]string) string {
				return p.Paint(StyleAny, "any") + " type"
			},
		},
		{
			Name:    "parameter",
			Pattern: parameterPattern,
			Replace: func(g []string) string {
				return "parameter " + p.Paint(StyleParam, g[0])
			},
		},
		{
			Name:    "declared",
			Pattern: declaredPattern,
			Global:  true,
			Replace: func(g []string) string {
				return p.Paint(StyleParam, g[0]) + " is declared"
			},
		},
		{
			Name:    "error-code",
			Pattern: errorCodePattern,
			Global:  true,
			Replace: func([]string) string { return "" },
		},
		{
			Name:    "location",
			Pattern: locationPattern,
			Global:  true,
			Replace: func(g []string) string {
				dir, file, line := g[0], g[1], g[2]
				return p.Paint(StyleFile, dir) + p.Paint(StyleFileBold, file) + " " + p.Paint(StyleLine, line) + ": "
			},
		},
	}
}
