// Package calc implements the derived-state computation rules for the
// invoice editor: defensive field parsing, per-row amounts, aggregation of
// totals, and the mid-edit input smoothing policy. Everything here is pure;
// malformed input degrades to zero instead of erroring so the editor never
// surfaces NaN while a field is mid-edit.
package calc

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts free-text field input into a float64. Unparseable or
// non-finite input yields 0. It never fails.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseStrict is like ParseNumber but reports whether the input was a finite
// number at all. The per-row display path treats unparseable quantity or
// rate differently from unparseable percentages.
func parseStrict(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatAmount renders a computed amount with exactly two digits after the
// decimal point, the display precision used everywhere on the invoice.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
