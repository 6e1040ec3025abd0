package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/itchan-dev/feedback/shared/logger"
	"github.com/itchan-dev/feedback/shared/utils"
)

// Health is a liveness probe endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "<h1>ok</h1>")
}

// Ready is a readiness probe endpoint.
// Returns 503 Service Unavailable if the record store does not answer.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	// Use a short timeout for health checks
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("readiness check failed", "error", err)
		utils.WriteText(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}

	utils.WriteText(w, http.StatusOK, "ok")
}
