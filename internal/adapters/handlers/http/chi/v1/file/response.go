package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"webapp/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// V1FileResponse is the JSON shape of a file record on upload and get
type V1FileResponse struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	URL        string    `json:"url"`
	UploadDate time.Time `json:"upload_date"`
}

func newFileResponse(record *domain.FileRecord) V1FileResponse {
	return V1FileResponse{
		ID:         record.ID,
		FileName:   record.FileName,
		URL:        record.FilePath,
		UploadDate: record.UploadDate,
	}
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

// writeError answers with a bodyless status derived from err
func (h *HandlerV1) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	switch {
	case errors.Is(err, domain.ErrFileNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		h.logger.Error("file operation failed",
			"request_id", middleware.GetReqID(r.Context()),
			"operation", operation,
			"error", err,
		)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

// fileIDParam parses the {fileID} path segment. A value that is not a UUID
// cannot name a record.
func fileIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
