package noop

import (
	"context"
	"log"

	"invoicepad/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs. Used in development
// and when no email provider is configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, toEmail, toName, invoiceNumber, downloadURL string) error {
	log.Printf("noopSender: invoice email to %s (%s), invoice %q, url: %s", toEmail, toName, invoiceNumber, downloadURL)
	return nil
}
