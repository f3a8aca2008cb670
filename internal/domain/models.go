package domain

// LineItem is one billable row on the invoice. Numeric-looking fields
// (quantity, rate, cgst, sgst) are stored as raw user input strings so that
// partial values like a trailing decimal point survive a render round-trip.
// Unparseable values behave as zero at computation time, never as an error.
type LineItem struct {
	Description string `json:"description"`
	HSNSAC      string `json:"hsn_sac"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	CGST        string `json:"cgst"`
	SGST        string `json:"sgst"`
}

// Invoice is the canonical editable document: header attributes, display
// labels, and an ordered sequence of line items. Line item order is display
// order and user-significant.
type Invoice struct {
	Logo      string  `json:"logo"`
	LogoWidth float64 `json:"logo_width"`

	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	ContactName     string `json:"contact_name"`
	CompanyAddress  string `json:"company_address"`
	CompanyAddress2 string `json:"company_address2"`
	CompanyAddress3 string `json:"company_address3"`
	GSTIN           string `json:"gstin"`
	CompanyCountry  string `json:"company_country"`

	BillTo         string `json:"bill_to"`
	ClientName     string `json:"client_name"`
	ClientAddress  string `json:"client_address"`
	ClientAddress2 string `json:"client_address2"`
	ClientCountry  string `json:"client_country"`

	InvoiceNumberLabel string `json:"invoice_number_label"`
	InvoiceNumber      string `json:"invoice_number"`
	InvoiceDateLabel   string `json:"invoice_date_label"`
	InvoiceDate        string `json:"invoice_date"`
	DueDateLabel       string `json:"due_date_label"`
	DueDate            string `json:"due_date"`

	ColumnDescription string `json:"column_description"`
	ColumnQuantity    string `json:"column_quantity"`
	ColumnRate        string `json:"column_rate"`
	ColumnCGST        string `json:"column_cgst"`
	ColumnSGST        string `json:"column_sgst"`
	ColumnAmount      string `json:"column_amount"`

	LineItems []LineItem `json:"line_items"`

	SubTotalLabel string `json:"sub_total_label"`
	TaxLabel      string `json:"tax_label"`
	CGSTLabel     string `json:"cgst_label"`
	SGSTLabel     string `json:"sgst_label"`
	TotalLabel    string `json:"total_label"`
	Currency      string `json:"currency"`

	NotesLabel string `json:"notes_label"`
	Notes      string `json:"notes"`
	TermsLabel string `json:"terms_label"`
	Terms      string `json:"terms"`
}

// Totals holds the derived sums over the line item sequence. It is always
// recomputed from the current invoice and never persisted.
type Totals struct {
	SubTotal   float64 `json:"sub_total"`
	TotalCGST  float64 `json:"total_cgst"`
	TotalSGST  float64 `json:"total_sgst"`
	GrandTotal float64 `json:"grand_total"`
}

// Clone returns a deep copy of the invoice. The line item slice is copied so
// no row aliases a prior version.
func (inv *Invoice) Clone() Invoice {
	out := *inv
	out.LineItems = make([]LineItem, len(inv.LineItems))
	copy(out.LineItems, inv.LineItems)
	return out
}

// BlankLineItem returns an empty template row.
func BlankLineItem() LineItem {
	return LineItem{}
}

// DefaultInvoice returns the built-in starting template: populated display
// labels and three blank line item rows.
func DefaultInvoice() Invoice {
	return Invoice{
		LogoWidth:          100,
		CompanyCountry:     "India",
		BillTo:             "Bill To:",
		ClientCountry:      "India",
		InvoiceNumberLabel: "Invoice#",
		InvoiceDateLabel:   "Invoice Date",
		DueDateLabel:       "Due Date",
		ColumnDescription:  "Item Description",
		ColumnQuantity:     "Qty",
		ColumnRate:         "Rate",
		ColumnCGST:         "CGST",
		ColumnSGST:         "SGST",
		ColumnAmount:       "Amount",
		LineItems: []LineItem{
			BlankLineItem(),
			BlankLineItem(),
			BlankLineItem(),
		},
		SubTotalLabel: "Sub Total",
		TaxLabel:      "Sale Tax",
		CGSTLabel:     "CGST Tax",
		SGSTLabel:     "SGST Tax",
		TotalLabel:    "TOTAL",
		Currency:      "$",
		NotesLabel:    "Notes",
		Notes:         "It was great doing business with you.",
		TermsLabel:    "Terms & Conditions",
		Terms:         "Please make the payment by the due date.",
	}
}
