package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vncsmyrnk/vote/internal/core/domain"
)

type mockQueue struct {
	mock.Mock
}

func (m *mockQueue) Push(ctx context.Context, vote *domain.Vote) error {
	return m.Called(ctx, vote).Error(0)
}

func (m *mockQueue) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockQueue) Range(ctx context.Context, start, stop int64) ([]domain.Vote, error) {
	args := m.Called(ctx, start, stop)
	votes, _ := args.Get(0).([]domain.Vote)
	return votes, args.Error(1)
}

func (m *mockQueue) Close() error {
	return m.Called().Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) VoteCast(option string) {
	m.Called(option)
}

func (m *mockMetrics) QueuePushFailed() {
	m.Called()
}

func (m *mockMetrics) HealthChecked(healthy bool) {
	m.Called(healthy)
}
