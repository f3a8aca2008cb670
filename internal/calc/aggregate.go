package calc

import "invoicepad/internal/domain"

// Aggregate folds the full line item sequence into derived totals. Every
// field of every row parses independently with a zero default; there is no
// early exit here, unlike the per-row display path. Sums stay unrounded so
// display rounding never compounds across rows. An empty sequence yields
// all-zero totals.
func Aggregate(lines []domain.LineItem) domain.Totals {
	var t domain.Totals
	for i := range lines {
		quantity := ParseNumber(lines[i].Quantity)
		rate := ParseNumber(lines[i].Rate)
		cgstPct := ParseNumber(lines[i].CGST)
		sgstPct := ParseNumber(lines[i].SGST)

		itemTotal := quantity * rate
		t.SubTotal += itemTotal
		t.TotalCGST += itemTotal * cgstPct / 100
		t.TotalSGST += itemTotal * sgstPct / 100
	}
	t.GrandTotal = t.SubTotal + t.TotalCGST + t.TotalSGST
	return t
}
