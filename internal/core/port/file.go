package port

import (
	"context"
	"io"
	"webapp/internal/core/domain"

	"github.com/google/uuid"
)

// FileRepository is an interface to define file metadata interactions
type FileRepository interface {
	Create(ctx context.Context, record domain.FileRecord) (*domain.FileRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileStorage is an interface to define object storage interactions
type FileStorage interface {
	PutObject(ctx context.Context, fileKey string, body io.Reader, size int64, contentType string) error
	DeleteObject(ctx context.Context, fileKey string) error
	Bucket() string
}

// FileService is an interface to define file service
type FileService interface {
	UploadFile(ctx context.Context, req domain.UploadRequest) (*domain.FileRecord, error)
	GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error)
	DeleteFile(ctx context.Context, fileID uuid.UUID) error
}
