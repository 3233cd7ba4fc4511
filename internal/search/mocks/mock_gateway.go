package mocks

import (
	"context"

	"carapi/internal/model"
	"carapi/internal/search"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

var _ search.Gateway = (*MockGateway)(nil)

func (m *MockGateway) CreateIndex(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockGateway) IndexExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) IndexCar(ctx context.Context, car *model.Car) (*search.IndexResult, error) {
	args := m.Called(ctx, car)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.IndexResult), args.Error(1)
}

func (m *MockGateway) Search(ctx context.Context, query map[string]any, size, from int) (*search.SearchResult, error) {
	args := m.Called(ctx, query, size, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*search.SearchResult), args.Error(1)
}

func (m *MockGateway) GetByID(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockGateway) DeleteByID(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockGateway) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) IndexName() string {
	args := m.Called()
	return args.String(0)
}
