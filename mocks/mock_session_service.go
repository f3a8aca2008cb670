package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicepad/internal/domain"
	"invoicepad/internal/service"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, initial *domain.Invoice) (*service.SessionView, error) {
	args := m.Called(ctx, initial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) EditField(ctx context.Context, id uuid.UUID, name string, value any) (*service.SessionView, error) {
	args := m.Called(ctx, id, name, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) EditLineField(ctx context.Context, id uuid.UUID, index int, name, value string) (*service.SessionView, error) {
	args := m.Called(ctx, id, index, name, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) AddLine(ctx context.Context, id uuid.UUID) (*service.SessionView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) RemoveLine(ctx context.Context, id uuid.UUID, index int) (*service.SessionView, error) {
	args := m.Called(ctx, id, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionView), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionService) Snapshot(ctx context.Context, id uuid.UUID) (*domain.Invoice, domain.Totals, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, domain.Totals{}, args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.Get(1).(domain.Totals), args.Error(2)
}

func (m *MockSessionService) SweepIdle(olderThan time.Duration) int {
	args := m.Called(olderThan)
	return args.Int(0)
}

func (m *MockSessionService) Count() int {
	args := m.Called()
	return args.Int(0)
}
