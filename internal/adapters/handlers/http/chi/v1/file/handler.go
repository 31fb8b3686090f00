package file

import (
	"log/slog"
	"webapp/internal/adapters/handlers/http/chi/gate"
	"webapp/internal/core/policy"
	"webapp/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for file routes
type HandlerV1 struct {
	fileService port.FileService
	logger      *slog.Logger
}

// NewFileHandlerV1 creates HandlerV1
func NewFileHandlerV1(service port.FileService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		fileService: service,
		logger:      logger,
	}
}

// Routes exposes handler routes, each behind its validation gate
func (h *HandlerV1) Routes(g *gate.Gate) chi.Router {
	router := chi.NewRouter()

	router.With(g.For(policy.RouteUpload)).Post("/", h.UploadFileV1)
	router.With(g.For(policy.RouteGetFile)).Get("/{fileID}", h.GetFileV1)
	router.With(g.For(policy.RouteDeleteFile)).Delete("/{fileID}", h.DeleteFileV1)

	return router
}
