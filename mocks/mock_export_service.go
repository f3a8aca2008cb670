package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicepad/internal/domain"
	"invoicepad/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, id uuid.UUID, format domain.ExportFormat) (*service.Export, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}

func (m *MockExportService) EmailPDF(ctx context.Context, id uuid.UUID, toEmail, toName string) error {
	args := m.Called(ctx, id, toEmail, toName)
	return args.Error(0)
}
