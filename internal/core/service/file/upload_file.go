package file

import (
	"context"
	"fmt"
	"path/filepath"
	"webapp/internal/core/domain"

	"github.com/google/uuid"
)

func (f *fileService) UploadFile(ctx context.Context, req domain.UploadRequest) (*domain.FileRecord, error) {

	fileID := uuid.New()
	fileKey := uuid.NewString() + filepath.Ext(req.FileName)
	saga := domain.NewUploadSaga(fileID, fileKey)

	if err := f.fileStorage.PutObject(ctx, fileKey, req.Body, req.Size, req.ContentType); err != nil {
		f.logger.Error("failed to store file", "fileKey", fileKey, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	if err := saga.Advance(domain.UploadStateBlobWritten); err != nil {
		return nil, err
	}

	record, createErr := f.fileRepo.Create(ctx, domain.FileRecord{
		ID:       fileID,
		FileName: req.FileName,
		FilePath: domain.FilePath(f.fileStorage.Bucket(), fileKey),
		MimeType: req.ContentType,
		Size:     req.Size,
	})
	if createErr != nil {
		f.logger.Error("failed to create file metadata", "fileID", fileID, "fileKey", fileKey, "error", createErr)
		return nil, f.compensate(ctx, saga, createErr)
	}

	if err := saga.Advance(domain.UploadStateCommitted); err != nil {
		return nil, err
	}
	return record, nil
}

// compensate removes the blob of a saga whose metadata write failed. It is
// attempted once, on a detached context so a cancelled request still gets
// its blob removed; the metadata failure is returned either way.
func (f *fileService) compensate(ctx context.Context, saga *domain.UploadSaga, createErr error) error {
	f.logger.Info("attempting to clean up stored file after failure", "fileKey", saga.FileKey)

	cleanupCtx, cancel := detach(ctx)
	defer cancel()

	deleteErr := f.fileStorage.DeleteObject(cleanupCtx, saga.FileKey)
	if deleteErr == nil {
		if err := saga.Advance(domain.UploadStateCompensatedOut); err != nil {
			return err
		}
		f.logger.Info("cleaned up stored file after failure", "fileKey", saga.FileKey)
		return fmt.Errorf("%w: %w", domain.ErrMetadataFailure, createErr)
	}

	if err := saga.Advance(domain.UploadStateOrphaned); err != nil {
		return err
	}
	f.logger.Error("failed to clean up stored file after failure",
		"fileID", saga.FileID,
		"fileKey", saga.FileKey,
		"error", deleteErr,
	)
	f.report(cleanupCtx, domain.ConsistencyEvent{
		Type:    domain.ConsistencyEventOrphanedBlob,
		FileID:  saga.FileID,
		FileKey: saga.FileKey,
		Reason:  deleteErr.Error(),
	})
	return fmt.Errorf("%w: %w (key %s: %w)", domain.ErrMetadataFailure, createErr, saga.FileKey, domain.ErrOrphanedBlob)
}
