package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/adapters/tracing"
	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

var options = domain.OptionPair{A: "Cats", B: "Dogs"}

func TestCastPushesRecord(t *testing.T) {
	queue := new(mockQueue)
	metrics := new(mockMetrics)
	var pushed *domain.Vote
	queue.On("Push", mock.Anything, mock.AnythingOfType("*domain.Vote")).
		Run(func(args mock.Arguments) { pushed = args.Get(1).(*domain.Vote) }).
		Return(nil).Once()
	metrics.On("VoteCast", "Cats").Once()

	svc := NewVoteService(queue, tracing.NewNoop(), metrics, options, time.Second, zap.NewNop())
	vote, err := svc.Cast(context.Background(), ports.CastInput{VoterID: "00000000000000aa", Vote: domain.ChoiceA})
	require.NoError(t, err)

	assert.Same(t, pushed, vote)
	assert.Equal(t, "00000000000000aa", vote.VoterID)
	assert.Equal(t, domain.ChoiceA, vote.Vote)
	require.NotNil(t, vote.TraceContext)
	assert.True(t, tracing.Valid(*vote.TraceContext))
	queue.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestCastUsesActiveSpanTraceContext(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	provider := tracing.New(tp, tp.Shutdown)

	queue := new(mockQueue)
	metrics := new(mockMetrics)
	queue.On("Push", mock.Anything, mock.Anything).Return(nil)
	metrics.On("VoteCast", "Dogs")

	ctx, span := provider.Tracer().Start(context.Background(), "cast_vote")
	svc := NewVoteService(queue, provider, metrics, options, time.Second, zap.NewNop())
	vote, err := svc.Cast(ctx, ports.CastInput{VoterID: "v", Vote: domain.ChoiceB})
	span.End()
	require.NoError(t, err)

	sc := span.SpanContext()
	require.NotNil(t, vote.TraceContext)
	assert.Equal(t, tracing.Format(sc.TraceID(), sc.SpanID()), *vote.TraceContext)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "queue.push", ended[0].Name())
	assert.Equal(t, sc.SpanID(), ended[0].Parent().SpanID())
}

func TestCastLabelsUnknownOptionsAsOther(t *testing.T) {
	queue := new(mockQueue)
	metrics := new(mockMetrics)
	queue.On("Push", mock.Anything, mock.Anything).Return(nil)
	metrics.On("VoteCast", "other").Once()

	svc := NewVoteService(queue, tracing.NewNoop(), metrics, options, time.Second, zap.NewNop())
	vote, err := svc.Cast(context.Background(), ports.CastInput{VoterID: "v", Vote: "Cats"})
	require.NoError(t, err)

	assert.Equal(t, "Cats", vote.Vote)
	metrics.AssertExpectations(t)
}

func TestCastRejectsEmptyInput(t *testing.T) {
	queue := new(mockQueue)
	metrics := new(mockMetrics)
	svc := NewVoteService(queue, tracing.NewNoop(), metrics, options, time.Second, zap.NewNop())

	_, err := svc.Cast(context.Background(), ports.CastInput{VoterID: "v"})
	assert.ErrorIs(t, err, domain.ErrInvalidVote)

	_, err = svc.Cast(context.Background(), ports.CastInput{Vote: "Cats"})
	assert.ErrorIs(t, err, domain.ErrMissingVoterID)

	queue.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestCastQueueFailure(t *testing.T) {
	queue := new(mockQueue)
	metrics := new(mockMetrics)
	queue.On("Push", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	metrics.On("QueuePushFailed").Once()

	svc := NewVoteService(queue, tracing.NewNoop(), metrics, options, time.Second, zap.NewNop())
	vote, err := svc.Cast(context.Background(), ports.CastInput{VoterID: "v", Vote: domain.ChoiceA})

	assert.Nil(t, vote)
	assert.ErrorIs(t, err, domain.ErrQueueUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	queue.AssertNumberOfCalls(t, "Push", 1)
	metrics.AssertNotCalled(t, "VoteCast", mock.Anything)
	metrics.AssertExpectations(t)
}

func TestCastBoundsPushWithTimeout(t *testing.T) {
	queue := new(mockQueue)
	metrics := new(mockMetrics)
	queue.On("Push", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		}).
		Return(nil)
	metrics.On("VoteCast", "Cats")

	svc := NewVoteService(queue, tracing.NewNoop(), metrics, options, 50*time.Millisecond, zap.NewNop())
	_, err := svc.Cast(context.Background(), ports.CastInput{VoterID: "v", Vote: domain.ChoiceA})
	require.NoError(t, err)
}

func TestCastWithoutTraceContext(t *testing.T) {
	queue := new(mockQueue)
	metrics := new(mockMetrics)
	queue.On("Push", mock.Anything, mock.Anything).Return(nil).Once()
	metrics.On("VoteCast", "Dogs")

	provider := tracing.NewNoop(tracing.WithEntropy(failingReader{}))
	svc := NewVoteService(queue, provider, metrics, options, time.Second, zap.NewNop())
	vote, err := svc.Cast(context.Background(), ports.CastInput{VoterID: "v", Vote: domain.ChoiceB})
	require.NoError(t, err)

	assert.Nil(t, vote.TraceContext)
	queue.AssertExpectations(t)
}
