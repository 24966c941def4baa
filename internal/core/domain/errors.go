package domain

import "errors"

var (
	ErrInvalidVote      = errors.New("vote selection is required")
	ErrMissingVoterID   = errors.New("voter id is required")
	ErrQueueUnavailable = errors.New("vote queue unavailable")
	ErrTraceContext     = errors.New("trace context generation failed")
)
