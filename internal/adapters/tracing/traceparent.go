// Package tracing provides the TraceProvider implementations used by the vote
// service and the W3C traceparent codec shared between them.
package tracing

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/vncsmyrnk/vote/internal/core/domain"
)

const (
	traceparentVersion = "00"
	traceparentFlags   = "01"

	// ZeroSpanSuffix marks a traceparent injected while no tracer was hooked in.
	ZeroSpanSuffix = "-0000000000000000-01"

	maxDrawAttempts = 8
)

var (
	ErrMalformedTraceparent = errors.New("malformed traceparent")

	traceparentPattern = regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`)
)

// Format renders ids as a sampled version-00 traceparent.
func Format(traceID trace.TraceID, spanID trace.SpanID) string {
	return fmt.Sprintf("%s-%s-%s-%s", traceparentVersion, traceID.String(), spanID.String(), traceparentFlags)
}

func Valid(token string) bool {
	return traceparentPattern.MatchString(token) && !strings.HasSuffix(token, ZeroSpanSuffix)
}

// RawTraceID extracts the 32 hex trace id segment used for log correlation.
func RawTraceID(token string) (string, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 4 || len(parts[1]) != 32 {
		return "", fmt.Errorf("%w: %q", ErrMalformedTraceparent, token)
	}
	return parts[1], nil
}

type generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

func newGenerator(entropy io.Reader) *generator {
	return &generator{entropy: entropy}
}

func (g *generator) traceparent() (string, error) {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	var traceID trace.TraceID
	if err := g.draw(traceID[:]); err != nil {
		return "", err
	}
	var spanID trace.SpanID
	if err := g.draw(spanID[:]); err != nil {
		return "", err
	}
	return Format(traceID, spanID), nil
}

// draw fills buf from the entropy source. An all-zero id is never returned.
func (g *generator) draw(buf []byte) error {
	for i := 0; i < maxDrawAttempts; i++ {
		if _, err := io.ReadFull(g.entropy, buf); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrTraceContext, err)
		}
		if !allZero(buf) {
			return nil
		}
	}
	return fmt.Errorf("%w: entropy source returned zero ids", domain.ErrTraceContext)
}

func allZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
