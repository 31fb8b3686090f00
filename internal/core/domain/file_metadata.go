package domain

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllowedImageMimeTypes is the set of MIME types accepted for upload
var AllowedImageMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

// IsAllowedImageMimeType reports whether mimeType may be uploaded
func IsAllowedImageMimeType(mimeType string) bool {
	_, ok := AllowedImageMimeTypes[strings.ToLower(mimeType)]
	return ok
}

// FileRecord represents the metadata of a stored file
type FileRecord struct {
	ID         uuid.UUID
	FileName   string
	FilePath   string
	MimeType   string
	Size       int64
	UploadDate time.Time
}

// StorageKey returns the object key part of FilePath (<bucket>/<key>)
func (f FileRecord) StorageKey() string {
	if i := strings.LastIndex(f.FilePath, "/"); i >= 0 {
		return f.FilePath[i+1:]
	}
	return f.FilePath
}

// FilePath joins a bucket and an object key
func FilePath(bucket, key string) string {
	return bucket + "/" + key
}

// UploadRequest is a validated file ready to be stored
type UploadRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}
