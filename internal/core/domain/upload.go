package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// UploadState represents the state of an upload saga
type UploadState string

const (
	UploadStateNotStarted     UploadState = "not_started"
	UploadStateBlobWritten    UploadState = "blob_written"
	UploadStateCommitted      UploadState = "committed"
	UploadStateCompensatedOut UploadState = "compensated_out"
	UploadStateOrphaned       UploadState = "orphaned"
)

var uploadTransitions = map[UploadState][]UploadState{
	UploadStateNotStarted:  {UploadStateBlobWritten},
	UploadStateBlobWritten: {UploadStateCommitted, UploadStateCompensatedOut, UploadStateOrphaned},
}

// UploadSaga tracks the blob/metadata write pair of a single upload.
// Only BlobWritten is transient; every other reachable state is terminal.
type UploadSaga struct {
	FileID  uuid.UUID
	FileKey string
	state   UploadState
	history []UploadState
}

// NewUploadSaga creates a saga in the NotStarted state
func NewUploadSaga(fileID uuid.UUID, fileKey string) *UploadSaga {
	return &UploadSaga{
		FileID:  fileID,
		FileKey: fileKey,
		state:   UploadStateNotStarted,
		history: []UploadState{UploadStateNotStarted},
	}
}

// State returns the current state
func (s *UploadSaga) State() UploadState {
	return s.state
}

// History returns every state the saga went through
func (s *UploadSaga) History() []UploadState {
	out := make([]UploadState, len(s.history))
	copy(out, s.history)
	return out
}

// Terminal reports whether the saga can no longer move
func (s *UploadSaga) Terminal() bool {
	return len(uploadTransitions[s.state]) == 0
}

// Advance moves the saga to next
func (s *UploadSaga) Advance(next UploadState) error {
	for _, allowed := range uploadTransitions[s.state] {
		if allowed == next {
			s.state = next
			s.history = append(s.history, next)
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidUploadTransition, s.state, next)
}
