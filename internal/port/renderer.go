package port

import (
	"context"

	"invoicepad/internal/domain"
)

// InvoiceRenderer produces a fixed-layout PDF from a settled invoice and its
// derived totals.
type InvoiceRenderer interface {
	Render(ctx context.Context, inv *domain.Invoice, totals domain.Totals) ([]byte, error)
}
