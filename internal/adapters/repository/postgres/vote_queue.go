package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

type voteQueue struct {
	db *sql.DB
}

func NewVoteQueue(db *sql.DB) ports.VoteQueue {
	return &voteQueue{
		db: db,
	}
}

func (q *voteQueue) Push(ctx context.Context, vote *domain.Vote) error {
	payload, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("failed to encode vote: %w", err)
	}

	query := `INSERT INTO vote_queue (payload) VALUES ($1)`
	if _, err := q.db.ExecContext(ctx, query, string(payload)); err != nil {
		return fmt.Errorf("failed to push vote: %w", err)
	}
	return nil
}

func (q *voteQueue) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

// Range follows LRANGE semantics: inclusive bounds, negative indexes count
// back from the newest entry.
func (q *voteQueue) Range(ctx context.Context, start, stop int64) ([]domain.Vote, error) {
	var length int64
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vote_queue`).Scan(&length); err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	offset, limit, ok := normalizeRange(start, stop, length)
	if !ok {
		return []domain.Vote{}, nil
	}

	query := `SELECT payload FROM vote_queue ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := q.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	defer rows.Close()

	votes := make([]domain.Vote, 0, limit)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		var vote domain.Vote
		if err := json.Unmarshal(payload, &vote); err != nil {
			return nil, fmt.Errorf("failed to decode vote: %w", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}
	return votes, nil
}

func (q *voteQueue) Close() error {
	return q.db.Close()
}

func normalizeRange(start, stop, length int64) (offset, limit int64, ok bool) {
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start > stop || start >= length {
		return 0, 0, false
	}
	return start, stop - start + 1, true
}
