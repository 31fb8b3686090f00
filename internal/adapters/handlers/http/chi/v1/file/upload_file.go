package file

import (
	"net/http"
	"webapp/internal/core/domain"
	"webapp/internal/core/policy"

	"github.com/go-chi/chi/v5/middleware"
)

// UploadFileV1 stores the single multipart file part. The gate has already
// parsed and validated the form.
func (h *HandlerV1) UploadFileV1(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	if r.MultipartForm == nil || len(r.MultipartForm.File[policy.UploadFieldName]) != 1 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	header := r.MultipartForm.File[policy.UploadFieldName][0]

	h.logger.Info("upload received",
		"request_id", requestID,
		"fileName", header.Filename,
		"size", header.Size,
	)

	body, err := header.Open()
	if err != nil {
		h.writeError(w, r, "upload", err)
		return
	}
	defer body.Close()

	record, err := h.fileService.UploadFile(r.Context(), domain.UploadRequest{
		FileName:    header.Filename,
		ContentType: policy.MediaType(header.Header.Get("Content-Type")),
		Size:        header.Size,
		Body:        body,
	})
	if err != nil {
		h.writeError(w, r, "upload", err)
		return
	}

	h.logger.Info("upload completed", "request_id", requestID, "fileID", record.ID, "url", record.FilePath)
	h.writeJSON(w, http.StatusCreated, newFileResponse(record))
}
