// Package pdf renders a settled invoice to a fixed-layout A4 PDF.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf"

	"invoicepad/internal/calc"
	"invoicepad/internal/domain"
	"invoicepad/internal/port"
)

// Column widths for the line item table, in mm (A4 width minus margins).
var colWidths = [7]float64{60, 20, 18, 18, 18, 22, 34}

type renderer struct {
	storage port.ObjectStorage
	bucket  string
}

// Option configures the renderer.
type Option func(*renderer)

// WithLogoStorage lets the renderer fetch and embed the uploaded logo image.
// Without it, invoices render without the logo.
func WithLogoStorage(storage port.ObjectStorage, bucket string) Option {
	return func(r *renderer) {
		r.storage = storage
		r.bucket = bucket
	}
}

// NewRenderer creates the gofpdf-backed InvoiceRenderer.
func NewRenderer(opts ...Option) port.InvoiceRenderer {
	r := &renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *renderer) Render(ctx context.Context, inv *domain.Invoice, totals domain.Totals) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	r.drawLogo(ctx, pdf, inv)

	// Title and company block
	pdf.SetFont("Arial", "B", 22)
	title := inv.Title
	if title == "" {
		title = "Invoice"
	}
	pdf.CellFormat(0, 12, tr(title), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 6, tr(inv.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{
		inv.ContactName,
		inv.CompanyAddress,
		inv.CompanyAddress2,
		inv.CompanyAddress3,
		inv.CompanyCountry,
		inv.GSTIN,
	} {
		if line != "" {
			pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	// Bill-to block and invoice metadata
	invoiceDate, dueDate := inv.EffectiveDates(time.Now())
	startY := pdf.GetY()

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 5, tr(inv.BillTo), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{
		inv.ClientName,
		inv.ClientAddress,
		inv.ClientAddress2,
		inv.ClientCountry,
	} {
		if line != "" {
			pdf.CellFormat(95, 5, tr(line), "", 1, "L", false, 0, "")
		}
	}
	endY := pdf.GetY()

	pdf.SetY(startY)
	metaRow := func(label, value string) {
		pdf.SetX(115)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
	}
	metaRow(inv.InvoiceNumberLabel, inv.InvoiceNumber)
	metaRow(inv.InvoiceDateLabel, invoiceDate.Format(domain.DateFormat))
	metaRow(inv.DueDateLabel, dueDate.Format(domain.DateFormat))
	if pdf.GetY() < endY {
		pdf.SetY(endY)
	}
	pdf.Ln(6)

	// Line item table
	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	headers := [7]string{
		inv.ColumnDescription,
		"HSN/SAC",
		inv.ColumnQuantity,
		inv.ColumnRate,
		inv.ColumnCGST,
		inv.ColumnSGST,
		inv.ColumnAmount,
	}
	for i, h := range headers {
		align := "R"
		if i == 0 || i == 1 {
			align = "L"
		}
		pdf.CellFormat(colWidths[i], 7, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 10)
	for i := range inv.LineItems {
		item := &inv.LineItems[i]
		// Blank template rows are edit-time affordances, not billed rows.
		if item.Description == "" {
			continue
		}
		amount := calc.LineAmount(item.Quantity, item.Rate, item.CGST, item.SGST)
		cells := [7]string{
			item.Description,
			item.HSNSAC,
			item.Quantity,
			item.Rate,
			item.CGST,
			item.SGST,
			amount,
		}
		for j, cell := range cells {
			align := "R"
			if j == 0 || j == 1 {
				align = "L"
			}
			pdf.CellFormat(colWidths[j], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// Totals block, right-aligned
	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.SetX(115)
		pdf.CellFormat(45, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "", 1, "R", false, 0, "")
	}
	totalRow(inv.SubTotalLabel, calc.FormatAmount(totals.SubTotal), false)
	totalRow(inv.CGSTLabel, calc.FormatAmount(totals.TotalCGST), false)
	totalRow(inv.SGSTLabel, calc.FormatAmount(totals.TotalSGST), false)
	totalRow(inv.TotalLabel, inv.Currency+calc.FormatAmount(totals.GrandTotal), true)
	pdf.Ln(6)

	// Notes and terms
	noteBlock := func(label, body string) {
		if body == "" {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 5, tr(label), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(body), "", "L", false)
		pdf.Ln(2)
	}
	noteBlock(inv.NotesLabel, inv.Notes)
	noteBlock(inv.TermsLabel, inv.Terms)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo fetches the invoice logo from object storage and places it at the
// top left, scaled to the invoice's logo width. A missing or unreadable logo
// degrades to a logo-less render rather than failing the export.
func (r *renderer) drawLogo(ctx context.Context, pdf *gofpdf.Fpdf, inv *domain.Invoice) {
	if inv.Logo == "" || r.storage == nil {
		return
	}
	key := port.ObjectKeyFromURL(inv.Logo, r.bucket)
	if key == "" {
		return
	}

	data, err := r.storage.Download(ctx, r.bucket, key)
	if err != nil {
		log.Printf("pdfRenderer: download logo %s: %v", key, err)
		return
	}
	imageType := sniffImageType(data)
	if imageType == "" {
		log.Printf("pdfRenderer: logo %s is not a supported image", key)
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(key, opts, bytes.NewReader(data))
	if pdf.Err() {
		log.Printf("pdfRenderer: register logo %s: %v", key, pdf.Error())
		pdf.ClearError()
		return
	}

	// Logo width is kept in CSS pixels to match the editing view; 96 px/inch.
	width := inv.LogoWidth * 25.4 / 96
	if width <= 0 {
		width = 26
	}
	pdf.ImageOptions(key, 10, pdf.GetY(), width, 0, true, opts, 0, "")
	pdf.Ln(4)
}

// sniffImageType detects the gofpdf image type from magic bytes.
func sniffImageType(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return "PNG"
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "JPG"
	}
	return ""
}
