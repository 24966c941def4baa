package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vncsmyrnk/vote/internal/config"
	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

type voteQueue struct {
	client *goredis.Client
	key    string
}

// NewClient builds a client whose every network step is bounded by timeout.
// Retries are disabled: a failed command surfaces to the caller at once.
func NewClient(cfg config.RedisConfig, timeout time.Duration) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   -1,
	})
}

func NewVoteQueue(client *goredis.Client, key string) ports.VoteQueue {
	return &voteQueue{
		client: client,
		key:    key,
	}
}

func (q *voteQueue) Push(ctx context.Context, vote *domain.Vote) error {
	payload, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}
	if err := q.client.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push vote: %w", err)
	}
	return nil
}

func (q *voteQueue) Ping(ctx context.Context) error {
	if err := q.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

func (q *voteQueue) Range(ctx context.Context, start, stop int64) ([]domain.Vote, error) {
	items, err := q.client.LRange(ctx, q.key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	votes := make([]domain.Vote, 0, len(items))
	for _, item := range items {
		var vote domain.Vote
		if err := json.Unmarshal([]byte(item), &vote); err != nil {
			return nil, fmt.Errorf("failed to decode vote %q: %w", item, err)
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

func (q *voteQueue) Close() error {
	return q.client.Close()
}
