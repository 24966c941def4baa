package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/vote/internal/core/domain"
	"github.com/vncsmyrnk/vote/internal/core/ports"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type PageHandler struct {
	options  domain.OptionPair
	hostname string
	traces   ports.TraceProvider
	logger   *zap.Logger
}

func NewPageHandler(options domain.OptionPair, hostname string, traces ports.TraceProvider, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		options:  options,
		hostname: hostname,
		traces:   traces,
		logger:   logger,
	}
}

type indexData struct {
	OptionA  string
	OptionB  string
	ChoiceA  string
	ChoiceB  string
	Hostname string
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	_, span := h.traces.Tracer().Start(r.Context(), "render_index")
	defer span.End()

	data := indexData{
		OptionA:  h.options.A,
		OptionB:  h.options.B,
		ChoiceA:  domain.ChoiceA,
		ChoiceB:  domain.ChoiceB,
		Hostname: h.hostname,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		h.logger.Error("failed to render index", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
