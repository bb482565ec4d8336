package params

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	css "github.com/mazznoer/csscolorparser"
)

// ParseStops parses a comma separated list of CSS colors
// ("#ff0000,navy,rgb(0,128,0)") into ramp stops. Commas inside functional
// notation do not separate stops. Alpha is ignored. An empty string yields
// no stops.
func ParseStops(s string) ([]colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := splitStops(s)
	stops := make([]colorful.Color, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := css.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("gradient stop %d (%q): %w", i, part, err)
		}
		stops = append(stops, colorful.Color{R: c.R, G: c.G, B: c.B})
	}
	return stops, nil
}

// splitStops splits on commas at parenthesis depth zero.
func splitStops(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// FormatStops renders stops as hex for logs and status text.
func FormatStops(stops []colorful.Color) string {
	if len(stops) == 0 {
		return "none"
	}
	hex := make([]string, len(stops))
	for i, c := range stops {
		hex[i] = c.Clamped().Hex()
	}
	return strings.Join(hex, ",")
}
