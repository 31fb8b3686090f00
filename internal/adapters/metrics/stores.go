package metrics

import (
	"context"
	"errors"
	"io"
	"time"
	"webapp/internal/core/domain"
	"webapp/internal/core/port"

	"github.com/google/uuid"
)

type instrumentedStorage struct {
	next     port.FileStorage
	recorder *Recorder
}

// InstrumentStorage times every object store call of next
func InstrumentStorage(next port.FileStorage, recorder *Recorder) port.FileStorage {
	return &instrumentedStorage{next: next, recorder: recorder}
}

func (s *instrumentedStorage) observe(operation string, start time.Time, err error) {
	s.recorder.storageDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		s.recorder.storageErrors.WithLabelValues(operation).Inc()
	}
}

func (s *instrumentedStorage) PutObject(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) error {
	start := time.Now()
	err := s.next.PutObject(ctx, fileKey, body, size, contentType)
	s.observe("put_object", start, err)
	return err
}

func (s *instrumentedStorage) DeleteObject(ctx context.Context, fileKey string) error {
	start := time.Now()
	err := s.next.DeleteObject(ctx, fileKey)
	s.observe("delete_object", start, err)
	return err
}

func (s *instrumentedStorage) Bucket() string {
	return s.next.Bucket()
}

type instrumentedFileRepository struct {
	next     port.FileRepository
	recorder *Recorder
}

// InstrumentFileRepository times every file_metadata call of next. A
// not found result is an answer, not an error.
func InstrumentFileRepository(next port.FileRepository, recorder *Recorder) port.FileRepository {
	return &instrumentedFileRepository{next: next, recorder: recorder}
}

func (f *instrumentedFileRepository) Create(ctx context.Context, record domain.FileRecord) (*domain.FileRecord, error) {
	start := time.Now()
	created, err := f.next.Create(ctx, record)
	f.recorder.observeDB("file_metadata", "create", start, err)
	return created, err
}

func (f *instrumentedFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	start := time.Now()
	record, err := f.next.FindByID(ctx, id)
	f.recorder.observeDB("file_metadata", "find", start, err)
	return record, err
}

func (f *instrumentedFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := f.next.Delete(ctx, id)
	f.recorder.observeDB("file_metadata", "delete", start, err)
	return err
}

type instrumentedHealthCheckRepository struct {
	next     port.HealthCheckRepository
	recorder *Recorder
}

// InstrumentHealthCheckRepository times every health_check insert of next
func InstrumentHealthCheckRepository(next port.HealthCheckRepository, recorder *Recorder) port.HealthCheckRepository {
	return &instrumentedHealthCheckRepository{next: next, recorder: recorder}
}

func (h *instrumentedHealthCheckRepository) Create(ctx context.Context) (*domain.HealthCheck, error) {
	start := time.Now()
	check, err := h.next.Create(ctx)
	h.recorder.observeDB("health_check", "create", start, err)
	return check, err
}

func (r *Recorder) observeDB(table, operation string, start time.Time, err error) {
	r.dbDuration.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, domain.ErrFileNotFound) {
		r.dbErrors.WithLabelValues(table, operation).Inc()
	}
}

type instrumentedPublisher struct {
	next     port.EventPublisher
	recorder *Recorder
}

// InstrumentPublisher counts every consistency event handed to next,
// whether or not the publish itself succeeds
func InstrumentPublisher(next port.EventPublisher, recorder *Recorder) port.EventPublisher {
	return &instrumentedPublisher{next: next, recorder: recorder}
}

func (p *instrumentedPublisher) Publish(ctx context.Context, event domain.ConsistencyEvent) error {
	p.recorder.consistencyEvents.WithLabelValues(string(event.Type)).Inc()
	return p.next.Publish(ctx, event)
}

func (p *instrumentedPublisher) Close() error {
	return p.next.Close()
}
