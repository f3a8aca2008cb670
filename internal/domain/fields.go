package domain

// Field names mirror the JSON tags on Invoice and LineItem. The mutation
// surface addresses fields by these names.
const (
	FieldLogoWidth = "logo_width"
	FieldLineItems = "line_items"
	FieldLogo      = "logo"
)

// SetHeaderField writes a single header attribute by name, enforcing the
// type discipline: logo_width only accepts numeric values, every other
// header attribute only accepts strings. The line item collection is not
// addressable here; it is mutable only via the line-item operations.
func SetHeaderField(inv *Invoice, name string, value any) error {
	if name == FieldLineItems {
		return ErrImmutableField
	}

	if name == FieldLogoWidth {
		f, ok := numericValue(value)
		if !ok {
			return ErrInvalidFieldType
		}
		inv.LogoWidth = f
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return ErrInvalidFieldType
	}

	switch name {
	case FieldLogo:
		inv.Logo = s
	case "title":
		inv.Title = s
	case "company_name":
		inv.CompanyName = s
	case "contact_name":
		inv.ContactName = s
	case "company_address":
		inv.CompanyAddress = s
	case "company_address2":
		inv.CompanyAddress2 = s
	case "company_address3":
		inv.CompanyAddress3 = s
	case "gstin":
		inv.GSTIN = s
	case "company_country":
		inv.CompanyCountry = s
	case "bill_to":
		inv.BillTo = s
	case "client_name":
		inv.ClientName = s
	case "client_address":
		inv.ClientAddress = s
	case "client_address2":
		inv.ClientAddress2 = s
	case "client_country":
		inv.ClientCountry = s
	case "invoice_number_label":
		inv.InvoiceNumberLabel = s
	case "invoice_number":
		inv.InvoiceNumber = s
	case "invoice_date_label":
		inv.InvoiceDateLabel = s
	case "invoice_date":
		inv.InvoiceDate = s
	case "due_date_label":
		inv.DueDateLabel = s
	case "due_date":
		inv.DueDate = s
	case "column_description":
		inv.ColumnDescription = s
	case "column_quantity":
		inv.ColumnQuantity = s
	case "column_rate":
		inv.ColumnRate = s
	case "column_cgst":
		inv.ColumnCGST = s
	case "column_sgst":
		inv.ColumnSGST = s
	case "column_amount":
		inv.ColumnAmount = s
	case "sub_total_label":
		inv.SubTotalLabel = s
	case "tax_label":
		inv.TaxLabel = s
	case "cgst_label":
		inv.CGSTLabel = s
	case "sgst_label":
		inv.SGSTLabel = s
	case "total_label":
		inv.TotalLabel = s
	case "currency":
		inv.Currency = s
	case "notes_label":
		inv.NotesLabel = s
	case "notes":
		inv.Notes = s
	case "terms_label":
		inv.TermsLabel = s
	case "terms":
		inv.Terms = s
	default:
		return ErrUnknownField
	}
	return nil
}

// NumericLineField reports whether a line item field carries the mid-edit
// smoothing policy (description and hsn_sac are stored verbatim).
func NumericLineField(name string) bool {
	switch name {
	case "quantity", "rate", "cgst", "sgst":
		return true
	}
	return false
}

// SetLineField writes a single line item field by name. The value is stored
// as given; normalization of numeric fields is the caller's concern.
func SetLineField(item *LineItem, name, value string) error {
	switch name {
	case "description":
		item.Description = value
	case "hsn_sac":
		item.HSNSAC = value
	case "quantity":
		item.Quantity = value
	case "rate":
		item.Rate = value
	case "cgst":
		item.CGST = value
	case "sgst":
		item.SGST = value
	default:
		return ErrUnknownField
	}
	return nil
}

// numericValue accepts the numeric representations a JSON or in-process
// caller may hand over for logo_width.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
