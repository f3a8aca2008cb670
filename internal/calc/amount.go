package calc

// LineAmount computes the display amount for a single row: quantity times
// rate plus both tax components, formatted to two decimals.
//
// Quantity and rate must both parse as finite numbers, otherwise the result
// is "0.00" immediately. The two percentages default to zero individually
// without short-circuiting, so a row with a valid quantity and rate but a
// half-typed tax rate still shows its base amount.
func LineAmount(quantity, rate, cgstPct, sgstPct string) string {
	q, okQ := parseStrict(quantity)
	r, okR := parseStrict(rate)
	if !okQ || !okR {
		return "0.00"
	}

	cgst := ParseNumber(cgstPct)
	sgst := ParseNumber(sgstPct)

	base := q * r
	amount := base + base*cgst/100 + base*sgst/100
	return FormatAmount(amount)
}
