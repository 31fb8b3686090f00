package file

import (
	"context"
	"errors"
	"fmt"
	"webapp/internal/core/domain"

	"github.com/google/uuid"
)

// DeleteFile removes the blob first, then the record. A blob delete failure
// keeps the record; a record delete failure after the blob is gone leaves a
// dangling record, which is reported and not repaired.
func (f *fileService) DeleteFile(ctx context.Context, fileID uuid.UUID) error {

	record, err := f.GetFile(ctx, fileID)
	if err != nil {
		return err
	}

	fileKey := record.StorageKey()
	if err := f.fileStorage.DeleteObject(ctx, fileKey); err != nil {
		f.logger.Error("failed to delete stored file", "fileID", fileID, "fileKey", fileKey, "error", err)
		return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}

	if err := f.fileRepo.Delete(ctx, fileID); err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return domain.ErrFileNotFound
		}
		f.logger.Error("file metadata outlived its stored file",
			"fileID", fileID,
			"fileKey", fileKey,
			"error", err,
		)
		f.report(ctx, domain.ConsistencyEvent{
			Type:    domain.ConsistencyEventDanglingRecord,
			FileID:  fileID,
			FileKey: fileKey,
			Reason:  err.Error(),
		})
		return fmt.Errorf("%w: %w: %w", domain.ErrMetadataFailure, domain.ErrDanglingRecord, err)
	}

	return nil
}
