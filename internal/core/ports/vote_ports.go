package ports

import (
	"context"

	"github.com/vncsmyrnk/vote/internal/core/domain"
)

type VoteQueue interface {
	Push(ctx context.Context, vote *domain.Vote) error
	Ping(ctx context.Context) error
	Range(ctx context.Context, start, stop int64) ([]domain.Vote, error)
	Close() error
}

type CastInput struct {
	VoterID string
	Vote    string
}

type VoteService interface {
	Cast(ctx context.Context, input CastInput) (*domain.Vote, error)
}
