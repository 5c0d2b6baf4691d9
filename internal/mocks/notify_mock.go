package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/omriShneor/project_concierge/internal/notify"
)

// MockNotifyService is a mock implementation of the notification service
type MockNotifyService struct {
	mock.Mock
}

func (m *MockNotifyService) NotifyEscalation(ctx context.Context, e notify.Escalation) {
	m.Called(ctx, e)
}
