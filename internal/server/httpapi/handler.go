// Package httpapi is the JSON-over-HTTP gateway: a chi router, its
// middleware and the handlers translating requests into service calls.
package httpapi

import (
	"context"
	"net/http"

	"github.com/ericmlantz/backend/internal/logging"
	"github.com/ericmlantz/backend/internal/server/metrics"
	"github.com/ericmlantz/backend/internal/server/services"
)

// HealthChecker is probed by /healthz.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies collects everything the handlers need.
type Dependencies struct {
	Auth      *services.AuthService
	Discovery *services.DiscoveryService
	Profiles  *services.ProfileService
	Matches   *services.MatchService
	Messages  *services.MessageService
	Media     *services.MediaService
	Health    HealthChecker
	Metrics   *metrics.Metrics

	SecretKey      []byte
	AllowedOrigins []string
}

type Handler struct {
	Dependencies
	logger logging.Logger
}

func NewHandler(logger logging.Logger, deps Dependencies) *Handler {
	return &Handler{Dependencies: deps, logger: logger}
}

// fail writes the mapped error response; 5xx causes are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	st := statusFor(err)
	if st.status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, st.status, st.code, st.msg)
}
