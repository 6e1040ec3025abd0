package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/itchan-dev/feedback/shared/config"
	"github.com/itchan-dev/feedback/shared/domain"
	"github.com/itchan-dev/feedback/shared/logger"

	"github.com/lib/pq"
)

//go:embed migrations/init.sql
var schema string

type Storage struct {
	db *sql.DB
}

// New connects, applies the schema and seeds the configured boards.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := Connect(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")

	s := &Storage{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.Seed(ctx, cfg.Public.Boards); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func Connect(ctx context.Context, cfg config.Pg) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Seed inserts boards that don't exist yet together with their seed submissions.
// Existing boards keep their submissions; only allowed_domains is refreshed.
func (s *Storage) Seed(ctx context.Context, boards []domain.Board) error {
	for _, b := range boards {
		if err := s.seedBoard(ctx, b); err != nil {
			return fmt.Errorf("seed board %s: %w", b.Slug, err)
		}
	}
	return nil
}

func (s *Storage) seedBoard(ctx context.Context, b domain.Board) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	res, err := tx.ExecContext(ctx,
		"INSERT INTO boards(id, slug, allowed_domains) VALUES($1, $2, $3) ON CONFLICT (slug) DO NOTHING",
		b.Id, b.Slug, pq.Array([]string(b.AllowedDomains)))
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if inserted == 0 {
		if _, err := tx.ExecContext(ctx, "UPDATE boards SET allowed_domains = $2 WHERE slug = $1",
			b.Slug, pq.Array([]string(b.AllowedDomains))); err != nil {
			return err
		}
		return tx.Commit()
	}

	for _, sub := range b.Submissions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO submissions(board_id, id, rating, feedback) VALUES($1, $2, $3, $4)",
			b.Id, sub.Id, sub.Rating, sub.Feedback); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
