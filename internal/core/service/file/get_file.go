package file

import (
	"context"
	"errors"
	"fmt"
	"webapp/internal/core/domain"

	"github.com/google/uuid"
)

func (f *fileService) GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error) {

	record, err := f.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMetadataFailure, err)
	}

	return record, nil
}
