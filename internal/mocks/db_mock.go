package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/omriShneor/project_concierge/internal/catalogue"
	"github.com/omriShneor/project_concierge/internal/database"
)

// MockDB is a mock implementation of database operations
type MockDB struct {
	mock.Mock
}

// Catalogue

func (m *MockDB) ListAll(ctx context.Context) ([]catalogue.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogue.Property), args.Error(1)
}

func (m *MockDB) GetProperty(ctx context.Context, id int64) (*catalogue.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogue.Property), args.Error(1)
}

// Guests

func (m *MockDB) GetGuestByPhone(ctx context.Context, digits string) (*database.Guest, error) {
	args := m.Called(ctx, digits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Guest), args.Error(1)
}

func (m *MockDB) FindGuestsByName(ctx context.Context, name string) ([]database.Guest, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]database.Guest), args.Error(1)
}

func (m *MockDB) GetGuestByGIN(ctx context.Context, gin string) (*database.Guest, error) {
	args := m.Called(ctx, gin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Guest), args.Error(1)
}

func (m *MockDB) GetGuestByEmail(ctx context.Context, email string) (*database.Guest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*database.Guest), args.Error(1)
}
