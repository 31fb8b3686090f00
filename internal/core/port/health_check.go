package port

import (
	"context"
	"webapp/internal/core/domain"
)

// HealthCheckRepository is an interface to define health probe persistence
type HealthCheckRepository interface {
	Create(ctx context.Context) (*domain.HealthCheck, error)
}

// HealthCheckService is an interface to define health check service
type HealthCheckService interface {
	Check(ctx context.Context) error
}
