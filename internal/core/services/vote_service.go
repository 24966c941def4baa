package services

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

const otherOptionLabel = "other"

type voteService struct {
	queue   ports.VoteQueue
	tracer  ports.TraceProvider
	metrics ports.Metrics
	options domain.OptionPair
	timeout time.Duration
	logger  *zap.Logger
}

func NewVoteService(
	queue ports.VoteQueue,
	tracer ports.TraceProvider,
	metrics ports.Metrics,
	options domain.OptionPair,
	timeout time.Duration,
	logger *zap.Logger,
) ports.VoteService {
	return &voteService{
		queue:   queue,
		tracer:  tracer,
		metrics: metrics,
		options: options,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *voteService) Cast(ctx context.Context, input ports.CastInput) (*domain.Vote, error) {
	if input.VoterID == "" {
		return nil, domain.ErrMissingVoterID
	}
	if input.Vote == "" {
		return nil, domain.ErrInvalidVote
	}

	vote := &domain.Vote{
		VoterID: input.VoterID,
		Vote:    input.Vote,
	}

	traceparent, err := s.tracer.Traceparent(ctx)
	if err != nil {
		s.logger.Warn("casting vote without trace context", zap.String("voter_id", vote.VoterID), zap.Error(err))
	} else {
		vote.TraceContext = &traceparent
	}

	if err := s.push(ctx, vote); err != nil {
		s.metrics.QueuePushFailed()
		return nil, fmt.Errorf("%w: %w", domain.ErrQueueUnavailable, err)
	}

	s.metrics.VoteCast(s.optionLabel(vote.Vote))
	return vote, nil
}

func (s *voteService) push(ctx context.Context, vote *domain.Vote) error {
	ctx, span := s.tracer.Tracer().Start(ctx, "queue.push",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("vote.option", s.optionLabel(vote.Vote))),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.queue.Push(ctx, vote); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "push failed")
		return err
	}
	return nil
}

// optionLabel keeps metric cardinality bounded; the vote itself is queued verbatim.
func (s *voteService) optionLabel(choice string) string {
	if label, ok := s.options.Label(choice); ok {
		return label
	}
	return otherOptionLabel
}
