package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/adapters/metrics"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

func NewHandler(
	pageHandler *PageHandler,
	voteHandler *VoteHandler,
	healthHandler *HealthHandler,
	identity *IdentityMiddleware,
	m *metrics.Metrics,
	traces ports.TraceProvider,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Metrics(m))
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(identity.Handler)

		r.Get("/", pageHandler.Index)
		r.Route("/api", func(r chi.Router) {
			r.Post("/vote", voteHandler.CastVote)
		})
	})

	return otelhttp.NewHandler(r, "vote",
		otelhttp.WithTracerProvider(traces.TracerProvider()),
		otelhttp.WithPropagators(traces.Propagator()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
