package handler

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/feedback/backend/internal/landing"
	"github.com/itchan-dev/feedback/backend/internal/service"
	"github.com/itchan-dev/feedback/backend/internal/widget"
	"github.com/itchan-dev/feedback/shared/config"
	"github.com/itchan-dev/feedback/shared/domain"
	"github.com/stretchr/testify/require"
)

type MockFeedbackService struct {
	MockGet       func(ctx context.Context, slug domain.Slug) (*domain.Board, error)
	MockSubmit    func(ctx context.Context, req service.SubmitRequest) (*domain.Submission, error)
	MockAuthorize func(ctx context.Context, slug domain.Slug, referer string) (*domain.Board, error)
}

func (m *MockFeedbackService) Get(ctx context.Context, slug domain.Slug) (*domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, slug)
	}
	return &domain.Board{Slug: slug}, nil // Default behavior
}

func (m *MockFeedbackService) Submit(ctx context.Context, req service.SubmitRequest) (*domain.Submission, error) {
	if m.MockSubmit != nil {
		return m.MockSubmit(ctx, req)
	}
	return &domain.Submission{Id: 1}, nil // Default behavior
}

func (m *MockFeedbackService) Authorize(ctx context.Context, slug domain.Slug, referer string) (*domain.Board, error) {
	if m.MockAuthorize != nil {
		return m.MockAuthorize(ctx, slug, referer)
	}
	return &domain.Board{Slug: slug}, nil // Default behavior
}

type MockHealthChecker struct {
	MockPing func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}

func testConfig(staticDir string) *config.Config {
	cfg := config.Default()
	cfg.Public.StaticDir = staticDir
	cfg.Public.Widget.CacheMaxAge = 24 * time.Hour
	return cfg
}

func newTestHandler(t *testing.T, svc service.FeedbackService, cfg *config.Config) *Handler {
	t.Helper()
	w, err := widget.New("")
	require.NoError(t, err)
	return New(svc, w, landing.New(landing.Options{}), &MockHealthChecker{}, cfg)
}

func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.NotFound(h.NotFound)
	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Get("/api/feedback/{slug}", h.GetFeedback)
	r.Post("/api/feedback/{slug}", h.SubmitFeedback)
	r.Get("/feedback/{slug}/widget.js", h.WidgetScript)
	r.Get("/live.js", h.LiveReload)
	return r
}
