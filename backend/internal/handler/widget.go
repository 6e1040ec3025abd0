package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/feedback/shared/middleware/metrics"
	"github.com/itchan-dev/feedback/shared/utils"
)

const javascriptContentType = "application/javascript; charset=utf-8"

// WidgetScript serves the bootstrap script for a board, or the component
// bundle itself when called with embed=true. Both require an allowed Referer.
func (h *Handler) WidgetScript(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	board, err := h.feedback.Authorize(r.Context(), slug, r.Referer())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	embed := r.URL.Query().Get("embed") == "true"

	var script []byte
	if embed {
		script = h.widget.Bundle()
	} else {
		script, err = h.widget.Bootstrap(h.baseURL(r), board.Slug)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, r, err)
			return
		}
	}
	metrics.RecordWidget(board.Slug, embed)

	w.Header().Set("Content-Type", javascriptContentType)
	w.Header().Set("Cache-Control", h.assetCacheControl())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(script)
}
