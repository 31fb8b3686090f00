package file

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// DeleteFileV1 removes the blob and its record
func (h *HandlerV1) DeleteFileV1(w http.ResponseWriter, r *http.Request) {
	fileID, ok := fileIDParam(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), fileID); err != nil {
		h.writeError(w, r, "delete", err)
		return
	}

	h.logger.Info("file deleted", "request_id", middleware.GetReqID(r.Context()), "fileID", fileID)
	w.WriteHeader(http.StatusNoContent)
}
