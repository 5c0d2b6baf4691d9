package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of the outbound transport
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendText(ctx context.Context, to, text string) error {
	args := m.Called(ctx, to, text)
	return args.Error(0)
}
