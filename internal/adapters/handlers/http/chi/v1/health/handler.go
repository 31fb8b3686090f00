package health

import (
	"log/slog"
	"net/http"
	"webapp/internal/core/port"
)

// HandlerV1 is the handler for the health route
type HandlerV1 struct {
	healthService port.HealthCheckService
	logger        *slog.Logger
}

// NewHealthHandlerV1 creates HandlerV1
func NewHealthHandlerV1(service port.HealthCheckService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{healthService: service, logger: logger}
}

// CheckV1 answers 200 when a probe row could be written, 503 otherwise.
// Both answers are bodyless.
func (h *HandlerV1) CheckV1(w http.ResponseWriter, r *http.Request) {
	if err := h.healthService.Check(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
