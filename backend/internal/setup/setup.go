package setup

import (
	"context"
	"fmt"

	"github.com/itchan-dev/feedback/backend/internal/handler"
	"github.com/itchan-dev/feedback/backend/internal/landing"
	"github.com/itchan-dev/feedback/backend/internal/service"
	"github.com/itchan-dev/feedback/backend/internal/storage/memory"
	"github.com/itchan-dev/feedback/backend/internal/storage/pg"
	"github.com/itchan-dev/feedback/backend/internal/utils"
	"github.com/itchan-dev/feedback/backend/internal/widget"
	"github.com/itchan-dev/feedback/shared/config"
	"github.com/itchan-dev/feedback/shared/logger"
	rl "github.com/itchan-dev/feedback/shared/middleware/ratelimiter"
)

// Storage is what the application needs from a record store.
type Storage interface {
	service.FeedbackStorage
	Ping(ctx context.Context) error
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config        *config.Config
	Storage       Storage
	Handler       *handler.Handler
	SubmitLimiter *rl.UserRateLimiter // nil when rate limiting is disabled
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	w, err := widget.New(cfg.Public.Widget.BundlePath)
	if err != nil {
		_ = storage.Cleanup()
		return nil, err
	}

	feedback := service.NewFeedback(storage, utils.NewSubmissionValidator())
	page := landing.New(landing.Options{LiveReload: cfg.IsDevelopment()})
	h := handler.New(feedback, w, page, storage, cfg)

	var limiter *rl.UserRateLimiter
	if cfg.Public.RateLimit.SubmitRPS > 0 {
		limiter = rl.New(cfg.Public.RateLimit.SubmitRPS, cfg.Public.RateLimit.SubmitBurst, cfg.Public.RateLimit.IdleTTL)
	}

	return &Dependencies{
		Config:        cfg,
		Storage:       storage,
		Handler:       h,
		SubmitLimiter: limiter,
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Public.Storage.Driver {
	case config.StorageMemory:
		logger.Log.Info("using in-memory storage", "boards", len(cfg.Public.Boards))
		return memory.New(cfg.Public.Boards), nil
	case config.StoragePostgres:
		storage, err := pg.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("init postgres storage: %w", err)
		}
		logger.Log.Info("using postgres storage", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Public.Storage.Driver)
	}
}
