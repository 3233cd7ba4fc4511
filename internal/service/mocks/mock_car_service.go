package mocks

import (
	"context"

	"carapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCarService struct {
	mock.Mock
}

var _ service.CarService = (*MockCarService)(nil)

func (m *MockCarService) List(ctx context.Context, q service.ListQuery) (*service.CarListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CarListResult), args.Error(1)
}

func (m *MockCarService) Create(ctx context.Context, raw []byte) (*service.CreateResult, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateResult), args.Error(1)
}

func (m *MockCarService) Get(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCarService) Delete(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCarService) CreateIndex(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCarService) Health(ctx context.Context) (*service.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HealthStatus), args.Error(1)
}

func (m *MockCarService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
