package mocks

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicepad/internal/service"
)

// MockLogoService is a mock implementation of service.LogoService.
type MockLogoService struct {
	mock.Mock
}

func (m *MockLogoService) Upload(ctx context.Context, id uuid.UUID, fileHeader *multipart.FileHeader) (*service.LogoUpload, error) {
	args := m.Called(ctx, id, fileHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LogoUpload), args.Error(1)
}
