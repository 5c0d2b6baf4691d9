package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCompleter is a mock implementation of the text-generation collaborator
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}
