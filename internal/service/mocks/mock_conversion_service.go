package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marcapi/internal/service"
)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, req service.ConversionRequest) (*service.ConversionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConversionResult), args.Error(1)
}

func (m *MockConversionService) ListConversions(ctx context.Context, limit, offset int) (*service.ConversionListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConversionListResult), args.Error(1)
}
