package domain

import "errors"

// ErrFileNotFound is an error thrown when file metadata is not found
var ErrFileNotFound = errors.New("file not found")

// ErrStorageFailure is an error thrown when the object store rejects an operation
var ErrStorageFailure = errors.New("storage failure")

// ErrMetadataFailure is an error thrown when the metadata store rejects an operation
var ErrMetadataFailure = errors.New("metadata failure")

// ErrOrphanedBlob is an error thrown when a blob is left without metadata
// because the compensating delete failed
var ErrOrphanedBlob = errors.New("orphaned blob")

// ErrDanglingRecord is an error thrown when a metadata record points to a
// blob that was already deleted
var ErrDanglingRecord = errors.New("dangling record")

// ErrHealthCheckFailed is an error thrown when the health probe cannot be recorded
var ErrHealthCheckFailed = errors.New("health check failed")

// ErrInvalidUploadTransition is an error thrown when an upload saga moves to a state it cannot reach
var ErrInvalidUploadTransition = errors.New("invalid upload transition")
