package file

import (
	"context"
	"log/slog"
	"time"
	"webapp/internal/core/domain"
	"webapp/internal/core/port"
)

type fileService struct {
	fileRepo    port.FileRepository
	fileStorage port.FileStorage
	publisher   port.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewFileService creates a new file service
func NewFileService(repo port.FileRepository, storage port.FileStorage, publisher port.EventPublisher, logger *slog.Logger) port.FileService {
	return &fileService{
		fileRepo:    repo,
		fileStorage: storage,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// cleanupTimeout bounds work that has to run after the request context is gone
const cleanupTimeout = 10 * time.Second

// detach returns a context that keeps the values of ctx but not its
// cancellation, bounded by cleanupTimeout
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
}

// report publishes an inconsistency; a failed publish is logged and never
// changes the outcome returned to the caller. It runs on a detached context
// since the request may already be cancelled.
func (f *fileService) report(ctx context.Context, event domain.ConsistencyEvent) {
	if f.publisher == nil {
		return
	}
	ctx, cancel := detach(ctx)
	defer cancel()
	event.Bucket = f.fileStorage.Bucket()
	event.OccurredAt = f.now().UTC()
	if err := f.publisher.Publish(ctx, event); err != nil {
		f.logger.Error("failed to publish consistency event",
			"type", event.Type,
			"fileID", event.FileID,
			"fileKey", event.FileKey,
			"error", err,
		)
	}
}
