package httpapi

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, "Hello to my app")
}

func (h *Handler) corsCheck(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "CORS is working!"})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	payload := map[string]any{
		"status": "ok",
	}

	if h.Health != nil {
		if err := h.Health.Ping(ctx); err != nil {
			h.logger.Error(ctx, "health probe failed", "error", err)
			status = http.StatusServiceUnavailable
			payload["status"] = "degraded"
			payload["error"] = err.Error()
		}
	}

	respondJSON(w, status, payload)
}
