package http

import (
	"context"
	"net/http"

	"github.com/vncsmyrnk/vote/internal/core/ports"
)

type contextKey string

const VoterIDKey contextKey = "voter_id"

// IdentityMiddleware resolves the voter id for every request and echoes it
// back as a cookie, whether it was reused or newly issued.
type IdentityMiddleware struct {
	service    ports.IdentityService
	cookieName string
}

func NewIdentityMiddleware(service ports.IdentityService, cookieName string) *IdentityMiddleware {
	return &IdentityMiddleware{
		service:    service,
		cookieName: cookieName,
	}
}

func (m *IdentityMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var current string
		var quoted bool
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			current = cookie.Value
			quoted = cookie.Quoted && current != ""
		}

		voterID := m.service.Resolve(current)
		http.SetCookie(w, &http.Cookie{
			Name:   m.cookieName,
			Value:  voterID,
			Quoted: quoted,
			Path:   "/",
		})

		ctx := context.WithValue(r.Context(), VoterIDKey, voterID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func VoterIDFromContext(ctx context.Context) string {
	voterID, _ := ctx.Value(VoterIDKey).(string)
	return voterID
}
