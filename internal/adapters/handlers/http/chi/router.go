package chi

import (
	"log/slog"
	"net/http"
	"time"
	"webapp/internal/adapters/handlers/http/chi/gate"
	"webapp/internal/adapters/handlers/http/chi/v1/file"
	"webapp/internal/adapters/handlers/http/chi/v1/health"
	"webapp/internal/adapters/metrics"
	"webapp/internal/core/policy"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options tunes the router middleware
type Options struct {
	RequestTimeout time.Duration
	// MaxBodySize caps every request body
	MaxBodySize int64
	// MaxMemory is the part of a multipart body kept in memory
	MaxMemory int64
}

// NewRouter builds http.Handler with chi. recorder may be nil.
func NewRouter(logger *slog.Logger, healthHandler *health.HandlerV1, fileHandler *file.HandlerV1, recorder *metrics.Recorder, opts Options) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	if recorder != nil {
		r.Use(recorder.Middleware)
	}
	r.Use(NoCacheHeaders)
	r.Use(Recoverer(logger))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}
	if opts.MaxBodySize > 0 {
		r.Use(middleware.RequestSize(opts.MaxBodySize))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		if recorder != nil {
			recorder.MethodNotAllowed()
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	var rejections gate.RejectionRecorder
	if recorder != nil {
		rejections = recorder
	}
	g := gate.New(policy.NewValidator(policy.CurrentHeaderPolicy), opts.MaxMemory, logger, rejections)

	if healthHandler != nil {
		r.With(g.For(policy.RouteHealthCheck)).Get("/healthz", healthHandler.CheckV1)
	}
	if fileHandler != nil {
		r.Mount("/file", fileHandler.Routes(g))
	}

	return r
}
