package nats

import (
	"context"
	"log/slog"
	"webapp/internal/core/domain"
)

// NoopPublisher stands in when no NATS URL is configured. Events are logged
// and dropped.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a NoopPublisher
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (n *NoopPublisher) Publish(_ context.Context, event domain.ConsistencyEvent) error {
	n.logger.Debug("consistency event dropped, no broker configured",
		"type", event.Type,
		"fileKey", event.FileKey,
	)
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
