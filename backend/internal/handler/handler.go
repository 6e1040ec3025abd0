package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/itchan-dev/feedback/backend/internal/landing"
	"github.com/itchan-dev/feedback/backend/internal/service"
	"github.com/itchan-dev/feedback/backend/internal/widget"
	"github.com/itchan-dev/feedback/shared/config"
)

// HealthChecker defines the interface for checking storage health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	feedback service.FeedbackService
	widget   *widget.Widget
	landing  *landing.Page
	health   HealthChecker
	cfg      *config.Config
	static   http.FileSystem
}

func New(feedback service.FeedbackService, w *widget.Widget, page *landing.Page, health HealthChecker, cfg *config.Config) *Handler {
	h := &Handler{
		feedback: feedback,
		widget:   w,
		landing:  page,
		health:   health,
		cfg:      cfg,
	}
	if cfg.Public.StaticDir != "" {
		h.static = http.Dir(cfg.Public.StaticDir)
	}
	return h
}

func (h *Handler) baseURL(r *http.Request) string {
	return widget.BaseURL(r, h.cfg.Public.Server.PublicURL)
}

// assetCacheControl applies to widget scripts and static files.
func (h *Handler) assetCacheControl() string {
	return "public, max-age=" + strconv.Itoa(int(h.cfg.Public.Widget.CacheMaxAge.Seconds()))
}
