package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/vote/internal/config"
	"github.com/vncsmyrnk/vote/internal/core/domain"
)

func setupQueue(t *testing.T) (*miniredis.Miniredis, *voteQueue) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewClient(config.RedisConfig{Addr: mr.Addr()}, time.Second)
	q := NewVoteQueue(client, "votes").(*voteQueue)
	t.Cleanup(func() { _ = q.Close() })
	return mr, q
}

func TestPushAppendsJSONToTail(t *testing.T) {
	mr, q := setupQueue(t)
	ctx := context.Background()
	traceparent := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

	require.NoError(t, q.Push(ctx, &domain.Vote{VoterID: "00000000000000aa", Vote: "Cats", TraceContext: &traceparent}))
	require.NoError(t, q.Push(ctx, &domain.Vote{VoterID: "00000000000000bb", Vote: "Dogs"}))

	items, err := mr.List("votes")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.JSONEq(t, `{"voter_id":"00000000000000aa","vote":"Cats","trace_context":"`+traceparent+`"}`, items[0])
	assert.JSONEq(t, `{"voter_id":"00000000000000bb","vote":"Dogs","trace_context":null}`, items[1])
}

func TestPushDoesNotDeduplicate(t *testing.T) {
	mr, q := setupQueue(t)
	vote := &domain.Vote{VoterID: "v", Vote: "Cats"}

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Push(context.Background(), vote))
	}

	items, err := mr.List("votes")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestRangeRoundTrip(t *testing.T) {
	_, q := setupQueue(t)
	ctx := context.Background()

	require.NoError(t, q.Push(ctx, &domain.Vote{VoterID: "first", Vote: "Cats"}))
	require.NoError(t, q.Push(ctx, &domain.Vote{VoterID: "second", Vote: "Dogs"}))

	votes, err := q.Range(ctx, 0, -1)
	require.NoError(t, err)
	require.Len(t, votes, 2)
	assert.Equal(t, "first", votes[0].VoterID)
	assert.Equal(t, "Cats", votes[0].Vote)
	assert.Equal(t, "second", votes[1].VoterID)
	assert.Equal(t, "Dogs", votes[1].Vote)

	last, err := q.Range(ctx, -1, -1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "second", last[0].VoterID)
}

func TestRangeRejectsForeignPayloads(t *testing.T) {
	mr, q := setupQueue(t)
	_, err := mr.RPush("votes", "not json")
	require.NoError(t, err)

	_, err = q.Range(context.Background(), 0, -1)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	mr, q := setupQueue(t)
	assert.NoError(t, q.Ping(context.Background()))

	mr.Close()
	assert.Error(t, q.Ping(context.Background()))
}

func TestPushFailsWhenUnreachable(t *testing.T) {
	mr, q := setupQueue(t)
	mr.Close()

	err := q.Push(context.Background(), &domain.Vote{VoterID: "v", Vote: "Cats"})
	assert.ErrorContains(t, err, "failed to push vote")
}

func TestPushSurfacesServerErrors(t *testing.T) {
	mr, q := setupQueue(t)
	require.NoError(t, q.Ping(context.Background()))
	mr.SetError("READONLY You can't write against a read only replica")

	err := q.Push(context.Background(), &domain.Vote{VoterID: "v", Vote: "Cats"})
	assert.ErrorContains(t, err, "READONLY")
}

func TestVoteJSONShape(t *testing.T) {
	payload, err := json.Marshal(domain.Vote{VoterID: "v", Vote: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"voter_id":"v","vote":"a","trace_context":null}`, string(payload))
}
