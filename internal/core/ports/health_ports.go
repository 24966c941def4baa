package ports

import "context"

type HealthService interface {
	Check(ctx context.Context) error
}
