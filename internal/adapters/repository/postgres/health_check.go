package postgres

import (
	"context"
	"fmt"
	"webapp/internal/core/domain"
	"webapp/internal/core/port"
)

type sqlHealthCheckRepository struct {
	db SQLQuerier
}

// NewSqlHealthCheckRepository creates sqlHealthCheckRepository that implements port.HealthCheckRepository
func NewSqlHealthCheckRepository(db SQLQuerier) port.HealthCheckRepository {
	return &sqlHealthCheckRepository{db: db}
}

// Create records one probe row, proving the database accepts writes
func (s *sqlHealthCheckRepository) Create(ctx context.Context) (*domain.HealthCheck, error) {
	query := `INSERT INTO health_check DEFAULT VALUES RETURNING check_id, checked_at`

	var check domain.HealthCheck
	if err := s.db.QueryRowContext(ctx, query).Scan(&check.ID, &check.CheckedAt); err != nil {
		return nil, fmt.Errorf("error inserting health check: %w", err)
	}
	check.CheckedAt = check.CheckedAt.UTC()
	return &check, nil
}
