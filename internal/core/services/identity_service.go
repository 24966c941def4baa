package services

import (
	"fmt"
	"math/rand/v2"

	"github.com/vncsmyrnk/vote/internal/core/ports"
)

type identityService struct {
	next func() uint64
}

// NewIdentityService issues voter ids from a non-cryptographic source. The ids
// only distinguish browsers and grant nothing.
func NewIdentityService() ports.IdentityService {
	return &identityService{next: rand.Uint64}
}

func (s *identityService) Resolve(cookieValue string) string {
	if cookieValue != "" {
		return cookieValue
	}
	return fmt.Sprintf("%016x", s.next())
}
