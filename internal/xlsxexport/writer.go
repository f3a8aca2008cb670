// Package xlsxexport renders an invoice as a single-sheet XLSX workbook.
package xlsxexport

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"invoicepad/internal/calc"
	"invoicepad/internal/domain"
)

const sheet = "Invoice"

// Write renders the invoice and totals into XLSX bytes. Numeric line item
// fields are written as numbers when they parse, otherwise as the raw
// string, so spreadsheet formulas keep working on well-formed rows.
func Write(inv *domain.Invoice, totals domain.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx delete default sheet: %w", err)
	}

	invoiceDate, dueDate := inv.EffectiveDates(time.Now())

	row := 1
	meta := [][2]string{
		{inv.InvoiceNumberLabel, inv.InvoiceNumber},
		{"Company", inv.CompanyName},
		{"GSTIN", inv.GSTIN},
		{inv.BillTo, inv.ClientName},
		{inv.InvoiceDateLabel, invoiceDate.Format(domain.DateFormat)},
		{inv.DueDateLabel, dueDate.Format(domain.DateFormat)},
	}
	for _, m := range meta {
		if err := setRow(f, row, m[0], m[1]); err != nil {
			return nil, err
		}
		row++
	}
	row++

	header := []any{
		inv.ColumnDescription,
		"HSN/SAC",
		inv.ColumnQuantity,
		inv.ColumnRate,
		inv.ColumnCGST,
		inv.ColumnSGST,
		inv.ColumnAmount,
	}
	if err := setCells(f, row, header); err != nil {
		return nil, err
	}
	row++

	for i := range inv.LineItems {
		item := &inv.LineItems[i]
		cells := []any{
			item.Description,
			item.HSNSAC,
			numericCell(item.Quantity),
			numericCell(item.Rate),
			numericCell(item.CGST),
			numericCell(item.SGST),
			calc.LineAmount(item.Quantity, item.Rate, item.CGST, item.SGST),
		}
		if err := setCells(f, row, cells); err != nil {
			return nil, err
		}
		row++
	}
	row++

	footer := [][2]string{
		{inv.SubTotalLabel, calc.FormatAmount(totals.SubTotal)},
		{inv.CGSTLabel, calc.FormatAmount(totals.TotalCGST)},
		{inv.SGSTLabel, calc.FormatAmount(totals.TotalSGST)},
		{inv.TotalLabel, inv.Currency + calc.FormatAmount(totals.GrandTotal)},
	}
	for _, m := range footer {
		if err := setRow(f, row, m[0], m[1]); err != nil {
			return nil, err
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// numericCell returns a float64 for input that parses as a number so the
// cell gets a numeric type. Blank stays blank and anything unparseable
// passes through as the raw string rather than being coerced to 0.
func numericCell(s string) any {
	if s == "" {
		return ""
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	return v
}

func setRow(f *excelize.File, row int, label, value string) error {
	return setCells(f, row, []any{label, value})
}

func setCells(f *excelize.File, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("xlsx cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("xlsx set cell %s: %w", cell, err)
		}
	}
	return nil
}
