package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicepad/internal/calc"
	"invoicepad/internal/domain"
)

func testInvoice() (domain.Invoice, domain.Totals) {
	inv := domain.DefaultInvoice()
	inv.InvoiceNumber = "INV-042"
	inv.CompanyName = "Acme Traders"
	inv.GSTIN = "29ABCDE1234F1Z5"
	inv.ClientName = "Globex"
	inv.LineItems = []domain.LineItem{
		{Description: "Widgets", HSNSAC: "8471", Quantity: "2", Rate: "100", CGST: "5", SGST: "5"},
		{Description: "Service fee", HSNSAC: "9983", Quantity: "1", Rate: "50"},
	}
	return inv, calc.Aggregate(inv.LineItems)
}

func TestWriteInvoice(t *testing.T) {
	inv, totals := testInvoice()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoice(&inv, totals))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	// Metadata block
	assert.Equal(t, []string{"Invoice#", "INV-042"}, rows[0])
	assert.Equal(t, []string{"Company", "Acme Traders"}, rows[1])

	// Line item table: header + two rows, amount column computed per row.
	// The blank separator lines are skipped by csv.Reader.
	headerIdx := 6
	assert.Equal(t, "Item Description", rows[headerIdx][0])
	assert.Equal(t, []string{"Widgets", "8471", "2", "100", "5", "5", "220.00"}, rows[headerIdx+1])
	assert.Equal(t, []string{"Service fee", "9983", "1", "50", "", "", "50.00"}, rows[headerIdx+2])

	// Totals block
	last := rows[len(rows)-1]
	assert.Equal(t, "TOTAL", last[0])
	assert.Equal(t, "$270.00", last[1])
	assert.Equal(t, []string{"Sub Total", "250.00"}, rows[len(rows)-4])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"INV-042", "INV-042"},
		{"Invoice #42 (final)", "Invoice_42_final"},
		{"a  b///c", "a_b_c"},
		{"___x___", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.input))
	}
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("INV 42", "csv")
	assert.Regexp(t, `^INV_42_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
