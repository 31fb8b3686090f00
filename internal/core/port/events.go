package port

import (
	"context"
	"webapp/internal/core/domain"
)

// EventPublisher is an interface to define an event publisher (nats, ...)
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ConsistencyEvent) error
	Close() error
}
