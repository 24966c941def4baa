package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

type healthService struct {
	queue   ports.VoteQueue
	metrics ports.Metrics
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthService(queue ports.VoteQueue, metrics ports.Metrics, timeout time.Duration, logger *zap.Logger) ports.HealthService {
	return &healthService{
		queue:   queue,
		metrics: metrics,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.queue.Ping(ctx)
	s.metrics.HealthChecked(err == nil)
	if err != nil {
		s.logger.Error("queue health check failed", zap.Error(err))
		return fmt.Errorf("%w: %w", domain.ErrQueueUnavailable, err)
	}
	return nil
}
