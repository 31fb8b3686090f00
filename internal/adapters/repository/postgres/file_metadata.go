package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"webapp/internal/core/domain"
	"webapp/internal/core/port"

	"github.com/google/uuid"
)

type sqlFileRepository struct {
	db SQLQuerier
}

// NewSqlFileRepository creates sqlFileRepository that implements port.FileRepository
func NewSqlFileRepository(db SQLQuerier) port.FileRepository {
	return &sqlFileRepository{
		db: db,
	}
}

// Create inserts a file record; upload_date is assigned by the database
func (s *sqlFileRepository) Create(ctx context.Context, record domain.FileRecord) (*domain.FileRecord, error) {
	query := `INSERT INTO file_metadata (id, file_name, file_path, mime_type, size_bytes)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING upload_date`

	err := s.db.QueryRowContext(ctx, query,
		record.ID,
		record.FileName,
		record.FilePath,
		record.MimeType,
		record.Size,
	).Scan(&record.UploadDate)
	if err != nil {
		return nil, fmt.Errorf("error inserting file metadata: %w", err)
	}

	record.UploadDate = record.UploadDate.UTC()
	return &record, nil
}

// FindByID finds by id
func (s *sqlFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	query := `SELECT id, file_name, file_path, mime_type, size_bytes, upload_date
              FROM file_metadata
              WHERE id = $1`

	var dbFile dbFileMetadata
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&dbFile.ID,
		&dbFile.FileName,
		&dbFile.FilePath,
		&dbFile.MimeType,
		&dbFile.Size,
		&dbFile.UploadDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("error querying file metadata: %w", err)
	}

	return dbFile.ToDomain(), nil
}

// Delete removes the record; a missing row is reported as not found
func (s *sqlFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM file_metadata WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting file metadata: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrFileNotFound
	}
	return nil
}

// dbFileMetadata represents file metadata in DB
type dbFileMetadata struct {
	ID         uuid.UUID `db:"id"`
	FileName   string    `db:"file_name"`
	FilePath   string    `db:"file_path"`
	MimeType   string    `db:"mime_type"`
	Size       int64     `db:"size_bytes"`
	UploadDate time.Time `db:"upload_date"`
}

// ToDomain converts to domain.FileRecord
func (f *dbFileMetadata) ToDomain() *domain.FileRecord {
	return &domain.FileRecord{
		ID:         f.ID,
		FileName:   f.FileName,
		FilePath:   f.FilePath,
		MimeType:   f.MimeType,
		Size:       f.Size,
		UploadDate: f.UploadDate.UTC(),
	}
}
