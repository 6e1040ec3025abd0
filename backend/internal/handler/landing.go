package handler

import (
	"net/http"

	"github.com/itchan-dev/feedback/backend/internal/widget"
	"github.com/itchan-dev/feedback/shared/utils"
)

const noCache = "no-cache, no-store, must-revalidate"

// Index renders the instructions page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.landing.Render(h.baseURL(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", noCache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// LiveReload serves the development reload script.
func (h *Handler) LiveReload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", javascriptContentType)
	w.Header().Set("Cache-Control", noCache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(widget.LiveReload())
}
