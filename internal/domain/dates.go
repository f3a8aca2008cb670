package domain

import "time"

// DateFormat is the display format used on rendered invoices.
const DateFormat = "Jan 02, 2006"

// defaultDueDays is added to the invoice date when no due date is set.
const defaultDueDays = 30

// EffectiveDates resolves the stored date strings for rendering. An empty or
// unparseable invoice date falls back to now; an empty or unparseable due
// date falls back to the invoice date plus thirty days. Stored values are
// never modified.
func (inv *Invoice) EffectiveDates(now time.Time) (invoiceDate, dueDate time.Time) {
	invoiceDate = parseDate(inv.InvoiceDate, now)
	dueDate = parseDate(inv.DueDate, invoiceDate.AddDate(0, 0, defaultDueDays))
	return invoiceDate, dueDate
}

func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range []string{DateFormat, "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
