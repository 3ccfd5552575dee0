package mocks

import (
	"context"

	"marcapi/internal/pergamum"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchRecord(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockClientProvider struct {
	mock.Mock
}

func (m *MockClientProvider) Client(baseURL string) (pergamum.Client, error) {
	args := m.Called(baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pergamum.Client), args.Error(1)
}
