package calc

import (
	"strconv"
	"strings"
)

// NormalizeNumericInput applies the mid-edit smoothing policy for numeric
// line item fields. A value the user is still typing — one ending in a
// decimal point, or in a trailing zero after a decimal point — is kept
// verbatim so the field does not visually snap under the cursor ("12.0"
// stays "12.0" rather than collapsing to "12"). Anything else is parsed and
// re-stringified; invalid input normalizes to "0".
func NormalizeNumericInput(value string) string {
	if value == "" {
		return "0"
	}

	last := value[len(value)-1]
	if last == '.' || (last == '0' && strings.Contains(value, ".")) {
		return value
	}

	n := ParseNumber(value)
	return strconv.FormatFloat(n, 'f', -1, 64)
}
