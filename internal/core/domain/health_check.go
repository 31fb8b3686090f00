package domain

import "time"

// HealthCheck represents a single successful health probe
type HealthCheck struct {
	ID        int64
	CheckedAt time.Time
}
