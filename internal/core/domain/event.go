package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConsistencyEventType is a type that represents a store/metadata inconsistency
type ConsistencyEventType string

const (
	// ConsistencyEventOrphanedBlob is raised when an uploaded blob could not be compensated
	ConsistencyEventOrphanedBlob ConsistencyEventType = "orphaned_blob"
	// ConsistencyEventDanglingRecord is raised when a record outlives its blob
	ConsistencyEventDanglingRecord ConsistencyEventType = "dangling_record"
)

// ConsistencyEvent reports a store/metadata pair left out of sync
type ConsistencyEvent struct {
	Type       ConsistencyEventType `json:"type"`
	FileID     uuid.UUID            `json:"file_id"`
	FileKey    string               `json:"file_key"`
	Bucket     string               `json:"bucket"`
	Reason     string               `json:"reason"`
	OccurredAt time.Time            `json:"occurred_at"`
}
