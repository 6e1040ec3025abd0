package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/feedback/backend/internal/setup"
	mw "github.com/itchan-dev/feedback/shared/middleware"
	"github.com/itchan-dev/feedback/shared/middleware/metrics"
	"github.com/itchan-dev/feedback/shared/utils"
)

// New creates and configures a chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	cfg := deps.Config.Public
	h := deps.Handler

	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger)
	r.Use(metrics.Middleware)

	// Enable gzip compression for all responses
	r.Use(chimw.Compress(5))

	// Widget pages post from arbitrary origins; the Referer check does the gating
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Cors.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Use(mw.SecurityHeaders(mw.SecurityOptions{
		IsHTTPS: cfg.Server.SecureHeaders || strings.HasPrefix(cfg.Server.PublicURL, "https://"),
		CSP:     mw.WidgetCSP(cfg.Server.ConnectSrc...),
	}))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	if deps.Config.IsDevelopment() {
		r.Get("/live.js", h.LiveReload)
	}

	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/{slug}", h.GetFeedback)

		submit := r.With()
		if deps.SubmitLimiter != nil {
			submit = r.With(mw.RateLimit(deps.SubmitLimiter, utils.GetIP)) // per client IP
		}
		submit.Post("/{slug}", h.SubmitFeedback)
	})

	r.Get("/feedback/{slug}/widget.js", h.WidgetScript)

	return r
}
