package port

import "context"

// EmailSender defines the contract for delivering an exported invoice to a
// recipient as a download link.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, toEmail, toName, invoiceNumber, downloadURL string) error
}
