package gate

import (
	"log/slog"
	"net/http"
	"webapp/internal/core/policy"

	"github.com/go-chi/chi/v5/middleware"
)

// RejectionRecorder is notified of every rejected request
type RejectionRecorder interface {
	Rejected(reason string)
}

// Gate runs the request validator in front of a route handler
type Gate struct {
	validator *policy.Validator
	maxMemory int64
	logger    *slog.Logger
	recorder  RejectionRecorder
}

// New creates a Gate. recorder may be nil.
func New(validator *policy.Validator, maxMemory int64, logger *slog.Logger, recorder RejectionRecorder) *Gate {
	return &Gate{
		validator: validator,
		maxMemory: maxMemory,
		logger:    logger,
		recorder:  recorder,
	}
}

// For returns the middleware validating requests of kind. Rejected requests
// get a bodyless 400 or 405 and never reach next. The upload body is parsed
// only after the method and headers pass.
func (g *Gate) For(kind policy.RouteKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env := HeaderEnvelope(r)
			decision := g.validator.Precheck(kind, env)
			if decision.Accepted() {
				parseBody(r, kind, g.maxMemory, &env)
				if r.MultipartForm != nil {
					defer r.MultipartForm.RemoveAll()
				}
				decision = g.validator.Validate(kind, env)
			}
			if !decision.Accepted() {
				g.logger.Info("request rejected",
					"request_id", middleware.GetReqID(r.Context()),
					"route", string(kind),
					"outcome", decision.Outcome.String(),
					"reason", string(decision.Reason),
					"detail", decision.Detail,
				)
				if g.recorder != nil {
					g.recorder.Rejected(string(decision.Reason))
				}
				w.WriteHeader(StatusFor(decision.Outcome))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// StatusFor maps a rejecting outcome to its HTTP status
func StatusFor(outcome policy.Outcome) int {
	switch outcome {
	case policy.MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case policy.InvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}
