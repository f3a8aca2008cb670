package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"invoicepad/internal/calc"
	"invoicepad/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting a single invoice as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteInvoice writes the invoice as a metadata block, the line item table
// (with per-row display amounts), and the totals block.
func (w *Writer) WriteInvoice(inv *domain.Invoice, totals domain.Totals) error {
	invoiceDate, dueDate := inv.EffectiveDates(time.Now())

	meta := [][]string{
		{inv.InvoiceNumberLabel, inv.InvoiceNumber},
		{"Company", inv.CompanyName},
		{"GSTIN", inv.GSTIN},
		{inv.BillTo, inv.ClientName},
		{inv.InvoiceDateLabel, invoiceDate.Format(domain.DateFormat)},
		{inv.DueDateLabel, dueDate.Format(domain.DateFormat)},
		{},
	}
	for _, row := range meta {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	header := []string{
		inv.ColumnDescription,
		"HSN/SAC",
		inv.ColumnQuantity,
		inv.ColumnRate,
		inv.ColumnCGST,
		inv.ColumnSGST,
		inv.ColumnAmount,
	}
	if err := w.csv.Write(header); err != nil {
		return err
	}

	for i := range inv.LineItems {
		item := &inv.LineItems[i]
		row := []string{
			item.Description,
			item.HSNSAC,
			item.Quantity,
			item.Rate,
			item.CGST,
			item.SGST,
			calc.LineAmount(item.Quantity, item.Rate, item.CGST, item.SGST),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	footer := [][]string{
		{},
		{inv.SubTotalLabel, calc.FormatAmount(totals.SubTotal)},
		{inv.CGSTLabel, calc.FormatAmount(totals.TotalCGST)},
		{inv.SGSTLabel, calc.FormatAmount(totals.TotalSGST)},
		{inv.TotalLabel, inv.Currency + calc.FormatAmount(totals.GrandTotal)},
	}
	for _, row := range footer {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an invoice number or prefix for use in
// Content-Disposition. Replaces non-alphanumeric chars (except - _) with _,
// collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
