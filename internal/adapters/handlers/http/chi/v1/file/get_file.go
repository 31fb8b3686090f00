package file

import (
	"net/http"
)

// GetFileV1 is the function that handles GetFile
func (h *HandlerV1) GetFileV1(w http.ResponseWriter, r *http.Request) {
	fileID, ok := fileIDParam(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	record, err := h.fileService.GetFile(r.Context(), fileID)
	if err != nil {
		h.writeError(w, r, "get", err)
		return
	}

	h.writeJSON(w, http.StatusOK, newFileResponse(record))
}
