package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/feedback/shared/domain"
	internal_errors "github.com/itchan-dev/feedback/shared/errors"

	"github.com/lib/pq"
)

func (s *Storage) GetBoard(ctx context.Context, slug domain.Slug) (*domain.Board, error) {
	var b domain.Board
	var domains []string
	err := s.db.QueryRowContext(ctx, "SELECT id, slug, allowed_domains FROM boards WHERE slug = $1", slug).
		Scan(&b.Id, &b.Slug, pq.Array(&domains))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("not found")
		}
		return nil, fmt.Errorf("get board: %w", err)
	}
	b.AllowedDomains = domain.Domains(domains)

	rows, err := s.db.QueryContext(ctx, "SELECT id, rating, feedback FROM submissions WHERE board_id = $1 ORDER BY id", b.Id)
	if err != nil {
		return nil, fmt.Errorf("get submissions: %w", err)
	}
	defer rows.Close()

	b.Submissions = []domain.Submission{}
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(&sub.Id, &sub.Rating, &sub.Feedback); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		b.Submissions = append(b.Submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	if b.AllowedDomains == nil {
		b.AllowedDomains = domain.Domains{}
	}
	return &b, nil
}

// AppendSubmission locks the board row so concurrent appends get consecutive ids.
func (s *Storage) AppendSubmission(ctx context.Context, slug domain.Slug, draft domain.SubmissionDraft) (*domain.Submission, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var boardId int
	err = tx.QueryRowContext(ctx, "SELECT id FROM boards WHERE slug = $1 FOR UPDATE", slug).Scan(&boardId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("not found")
		}
		return nil, fmt.Errorf("lock board: %w", err)
	}

	sub := domain.Submission{Rating: draft.Rating, Feedback: draft.Feedback}
	err = tx.QueryRowContext(ctx, `
	INSERT INTO submissions(board_id, id, rating, feedback)
	SELECT $1::integer, COUNT(*) + 1, $2::smallint, $3::text FROM submissions WHERE board_id = $1::integer
	RETURNING id`, boardId, draft.Rating, draft.Feedback).Scan(&sub.Id)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &sub, nil
}
