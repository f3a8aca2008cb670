package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicepad/internal/domain"
)

func TestNew_DefaultTemplate(t *testing.T) {
	e := New(nil)

	inv := e.Invoice()
	assert.Len(t, inv.LineItems, 3)
	assert.Equal(t, "Sub Total", inv.SubTotalLabel)
	assert.Equal(t, domain.Totals{}, e.Totals())
}

func TestNew_CopiesCallerValue(t *testing.T) {
	initial := domain.DefaultInvoice()
	initial.CompanyName = "Acme Traders"

	e := New(&initial)

	// Mutating the caller's value after construction must not leak in.
	initial.LineItems[0].Quantity = "999"
	initial.CompanyName = "changed"

	inv := e.Invoice()
	assert.Equal(t, "Acme Traders", inv.CompanyName)
	assert.Equal(t, "", inv.LineItems[0].Quantity)
	assert.Equal(t, 0.0, e.Totals().SubTotal)
}

func TestEditField_Header(t *testing.T) {
	e := New(nil)

	require.NoError(t, e.EditField("company_name", "Acme Traders"))
	assert.Equal(t, "Acme Traders", e.Invoice().CompanyName)
}

func TestEditField_HeaderEditDoesNotAlterTotals(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.EditLineField(0, "quantity", "2"))
	require.NoError(t, e.EditLineField(0, "rate", "100"))
	require.NoError(t, e.EditLineField(0, "cgst", "5"))
	require.NoError(t, e.EditLineField(0, "sgst", "5"))
	before := e.Totals()

	require.NoError(t, e.EditField("company_name", "Acme Traders"))

	assert.Equal(t, before, e.Totals())
	assert.Equal(t, 200.0, e.Totals().SubTotal)
}

func TestEditField_LogoWidthTypeDiscipline(t *testing.T) {
	e := New(nil)

	require.NoError(t, e.EditField("logo_width", 160.0))
	assert.Equal(t, 160.0, e.Invoice().LogoWidth)

	err := e.EditField("logo_width", "wide")
	assert.ErrorIs(t, err, domain.ErrInvalidFieldType)

	err = e.EditField("company_name", 42.0)
	assert.ErrorIs(t, err, domain.ErrInvalidFieldType)

	// Failed edits leave state untouched.
	assert.Equal(t, 160.0, e.Invoice().LogoWidth)
}

func TestEditField_LineItemsNotAddressable(t *testing.T) {
	e := New(nil)
	err := e.EditField("line_items", "anything")
	assert.ErrorIs(t, err, domain.ErrImmutableField)
}

func TestEditField_UnknownName(t *testing.T) {
	e := New(nil)
	err := e.EditField("no_such_field", "v")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestEditLineField_SmoothingPolicy(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"12.0", "12.0"},
		{"12.", "12."},
		{"12.05", "12.05"},
		{"abc", "0"},
		{"012", "12"},
	}

	for _, tt := range tests {
		e := New(nil)
		require.NoError(t, e.EditLineField(0, "quantity", tt.input))
		assert.Equal(t, tt.want, e.Invoice().LineItems[0].Quantity, "input %q", tt.input)
	}
}

func TestEditLineField_DescriptionVerbatim(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.EditLineField(0, "description", "consulting 12.0"))
	require.NoError(t, e.EditLineField(0, "hsn_sac", "9983"))

	inv := e.Invoice()
	assert.Equal(t, "consulting 12.0", inv.LineItems[0].Description)
	assert.Equal(t, "9983", inv.LineItems[0].HSNSAC)
}

func TestEditLineField_OutOfRange(t *testing.T) {
	e := New(nil)
	assert.ErrorIs(t, e.EditLineField(3, "quantity", "1"), domain.ErrLineOutOfRange)
	assert.ErrorIs(t, e.EditLineField(-1, "quantity", "1"), domain.ErrLineOutOfRange)
}

func TestEditLineField_UnknownField(t *testing.T) {
	e := New(nil)
	assert.ErrorIs(t, e.EditLineField(0, "amount", "5"), domain.ErrUnknownField)
}

func TestScenario_FillFirstRow(t *testing.T) {
	e := New(nil)

	require.NoError(t, e.EditLineField(0, "quantity", "2"))
	require.NoError(t, e.EditLineField(0, "rate", "100"))
	require.NoError(t, e.EditLineField(0, "cgst", "5"))
	require.NoError(t, e.EditLineField(0, "sgst", "5"))

	assert.Equal(t, "220.00", e.LineAmounts()[0])

	totals := e.Totals()
	assert.Equal(t, 200.0, totals.SubTotal)
	assert.Equal(t, 10.0, totals.TotalCGST)
	assert.Equal(t, 10.0, totals.TotalSGST)
	assert.Equal(t, 220.0, totals.GrandTotal)
}

func TestScenario_RemoveFilledRowResetsTotals(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.EditLineField(0, "quantity", "2"))
	require.NoError(t, e.EditLineField(0, "rate", "100"))
	require.NoError(t, e.EditLineField(0, "cgst", "5"))
	require.NoError(t, e.EditLineField(0, "sgst", "5"))

	require.NoError(t, e.RemoveLine(0))

	assert.Len(t, e.Invoice().LineItems, 2)
	assert.Equal(t, 0.0, e.Totals().SubTotal)
}

func TestAddThenRemoveLastRestoresSequence(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.EditLineField(1, "description", "keep me"))
	before := e.Invoice().LineItems

	require.NoError(t, e.AddLine())
	require.NoError(t, e.RemoveLine(len(before)))

	assert.Equal(t, before, e.Invoice().LineItems)
}

func TestRemoveLine_PreservesOrder(t *testing.T) {
	e := New(nil)
	require.NoError(t, e.EditLineField(0, "description", "first"))
	require.NoError(t, e.EditLineField(1, "description", "second"))
	require.NoError(t, e.EditLineField(2, "description", "third"))

	require.NoError(t, e.RemoveLine(1))

	inv := e.Invoice()
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "first", inv.LineItems[0].Description)
	assert.Equal(t, "third", inv.LineItems[1].Description)
}

func TestRemoveLine_EmptySequence(t *testing.T) {
	e := New(&domain.Invoice{})
	assert.ErrorIs(t, e.RemoveLine(0), domain.ErrLineOutOfRange)
}

func TestAddLine_Limit(t *testing.T) {
	e := New(nil, WithMaxLineItems(3))
	assert.ErrorIs(t, e.AddLine(), domain.ErrLineLimit)
}

func TestObserver_NotifiedOncePerMutation(t *testing.T) {
	var seen []domain.Invoice
	e := New(nil, WithObserver(func(inv domain.Invoice) {
		seen = append(seen, inv)
	}))

	require.NoError(t, e.EditField("company_name", "Acme Traders"))
	require.NoError(t, e.EditLineField(0, "quantity", "2"))
	require.NoError(t, e.AddLine())
	require.NoError(t, e.RemoveLine(3))

	require.Len(t, seen, 4)
	assert.Equal(t, "Acme Traders", seen[0].CompanyName)
	assert.Equal(t, "2", seen[1].LineItems[0].Quantity)
	assert.Len(t, seen[2].LineItems, 4)
	assert.Len(t, seen[3].LineItems, 3)
}

func TestObserver_NotNotifiedOnRejectedMutation(t *testing.T) {
	calls := 0
	e := New(nil, WithObserver(func(domain.Invoice) { calls++ }))

	assert.Error(t, e.EditLineField(99, "quantity", "1"))
	assert.Error(t, e.EditField("line_items", "x"))
	assert.Equal(t, 0, calls)
}

func TestCopyOnWrite_NoRowAliasing(t *testing.T) {
	e := New(nil)
	v1 := e.Invoice()

	require.NoError(t, e.EditLineField(0, "quantity", "7"))

	// The previously returned version must be unaffected.
	assert.Equal(t, "", v1.LineItems[0].Quantity)
	assert.Equal(t, "7", e.Invoice().LineItems[0].Quantity)
}
