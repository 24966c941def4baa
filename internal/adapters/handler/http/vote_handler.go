package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/adapters/tracing"
	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
	"github.com/vncsmyrnk/vote/internal/logging"
)

const maxVoteBodyBytes = 1 << 16

type VoteHandler struct {
	service ports.VoteService
	traces  ports.TraceProvider
	logger  *zap.Logger
}

func NewVoteHandler(service ports.VoteService, traces ports.TraceProvider, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		traces:  traces,
		logger:  logger,
	}
}

type voteRequest struct {
	Vote string `json:"vote"`
}

type voteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CastVote pushes the selection onto the vote queue for the voter identified
// by the voter id cookie.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.traces.Tracer().Start(r.Context(), "cast_vote")
	defer span.End()

	voterID := VoterIDFromContext(ctx)
	span.SetAttributes(attribute.String("voter.id", voterID))

	choice, err := parseVote(w, r)
	if err != nil {
		h.fail(w, span, voterID, err)
		return
	}

	vote, err := h.service.Cast(ctx, ports.CastInput{VoterID: voterID, Vote: choice})
	if err != nil {
		h.fail(w, span, voterID, err)
		return
	}

	h.logger.Info("vote cast",
		zap.String("voter_id", vote.VoterID),
		zap.String("vote", vote.Vote),
		logging.TraceField(recordTraceID(vote)),
	)
	if err := writeJSON(w, http.StatusOK, voteResponse{Success: true, Message: "Vote cast"}); err != nil {
		h.logger.Error("failed to encode vote response", zap.Error(err))
	}
}

// fail keeps the detail server side; callers only ever see a generic error.
func (h *VoteHandler) fail(w http.ResponseWriter, span trace.Span, voterID string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var traceID string
	if sc := span.SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}
	h.logger.Error("failed to cast vote",
		zap.String("voter_id", voterID),
		zap.Error(err),
		logging.TraceField(traceID),
	)

	if err := writeJSON(w, http.StatusInternalServerError, voteResponse{Success: false, Error: "Internal Server Error"}); err != nil {
		h.logger.Error("failed to encode vote response", zap.Error(err))
	}
}

func parseVote(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxVoteBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return "", fmt.Errorf("invalid vote form: %w", err)
		}
		return r.PostFormValue("vote"), nil
	case "multipart/form-data":
		// ParseForm leaves PostForm empty for multipart bodies.
		if err := r.ParseMultipartForm(maxVoteBodyBytes); err != nil {
			return "", fmt.Errorf("invalid vote form: %w", err)
		}
		return r.PostFormValue("vote"), nil
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("invalid vote request body: %w", err)
	}
	return req.Vote, nil
}

func recordTraceID(vote *domain.Vote) string {
	if vote.TraceContext == nil {
		return ""
	}
	raw, err := tracing.RawTraceID(*vote.TraceContext)
	if err != nil {
		return ""
	}
	return raw
}
