package handler

import (
	"net/http"
	"path"

	"github.com/itchan-dev/feedback/shared/utils"
)

// NotFound serves a file from the static directory when one matches the
// path, and answers 404 otherwise.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && h.serveStatic(w, r) {
		return
	}
	utils.WriteText(w, http.StatusNotFound, "not found")
}

func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if h.static == nil {
		return false
	}

	// http.Dir rejects paths that escape the root once cleaned
	f, err := h.static.Open(path.Clean("/" + r.URL.Path))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	w.Header().Set("Cache-Control", h.assetCacheControl())
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
