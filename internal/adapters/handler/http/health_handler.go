package http

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vncsmyrnk/vote/internal/core/ports"
)

type HealthHandler struct {
	service ports.HealthService
	traces  ports.TraceProvider
}

func NewHealthHandler(service ports.HealthService, traces ports.TraceProvider) *HealthHandler {
	return &HealthHandler{
		service: service,
		traces:  traces,
	}
}

// Health pings the vote queue and answers OK or Unhealthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.traces.Tracer().Start(r.Context(), "health",
		trace.WithAttributes(attribute.String("user_agent.original", r.UserAgent())),
	)
	defer span.End()

	if err := h.service.Check(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "queue unreachable")
		writeText(w, http.StatusInternalServerError, "Unhealthy")
		return
	}

	span.SetStatus(codes.Ok, "completed call")
	writeText(w, http.StatusOK, "OK")
}
