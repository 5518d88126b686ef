package mocks

import (
	"context"

	"gamesapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) Create(ctx context.Context, game model.Game) (string, error) {
	args := m.Called(ctx, game)
	return args.String(0), args.Error(1)
}

func (m *MockGameService) List(ctx context.Context, q string, limit int64) ([]model.StoredGame, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredGame), args.Error(1)
}

func (m *MockGameService) SeedSamples(ctx context.Context) ([]model.StoredGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredGame), args.Error(1)
}
