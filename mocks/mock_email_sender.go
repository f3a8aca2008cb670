package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceEmail(ctx context.Context, toEmail, toName, invoiceNumber, downloadURL string) error {
	args := m.Called(ctx, toEmail, toName, invoiceNumber, downloadURL)
	return args.Error(0)
}
