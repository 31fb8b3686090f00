package healthcheck

import (
	"context"
	"fmt"
	"log/slog"
	"webapp/internal/core/domain"
	"webapp/internal/core/port"
)

type healthCheckService struct {
	repo   port.HealthCheckRepository
	logger *slog.Logger
}

// NewHealthCheckService creates a new health check service
func NewHealthCheckService(repo port.HealthCheckRepository, logger *slog.Logger) port.HealthCheckService {
	return &healthCheckService{repo: repo, logger: logger}
}

// Check writes one probe row. Any failure to write makes the service unhealthy.
func (h *healthCheckService) Check(ctx context.Context) error {
	check, err := h.repo.Create(ctx)
	if err != nil {
		h.logger.Warn("health check failed", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrHealthCheckFailed, err)
	}

	h.logger.Debug("health check recorded", "checkID", check.ID)
	return nil
}
