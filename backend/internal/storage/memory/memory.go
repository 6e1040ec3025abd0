// Package memory is the default record store: boards live in process memory
// and reset on restart.
package memory

import (
	"context"
	"sync"

	"github.com/itchan-dev/feedback/shared/domain"
	"github.com/itchan-dev/feedback/shared/errors"
)

type Storage struct {
	mu     sync.RWMutex
	boards []*domain.Board
}

// New seeds the store with copies of boards.
func New(boards []domain.Board) *Storage {
	s := &Storage{boards: make([]*domain.Board, 0, len(boards))}
	for _, b := range boards {
		c := b.Clone()
		s.boards = append(s.boards, &c)
	}
	return s
}

func (s *Storage) find(slug domain.Slug) *domain.Board {
	for _, b := range s.boards {
		if b.Slug == slug {
			return b
		}
	}
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, slug domain.Slug) (*domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := s.find(slug)
	if b == nil {
		return nil, errors.NotFound("not found")
	}
	c := b.Clone()
	return &c, nil
}

func (s *Storage) AppendSubmission(ctx context.Context, slug domain.Slug, draft domain.SubmissionDraft) (*domain.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.find(slug)
	if b == nil {
		return nil, errors.NotFound("not found")
	}
	submission := domain.Submission{
		Id:       b.NextSubmissionId(),
		Rating:   draft.Rating,
		Feedback: draft.Feedback,
	}
	b.Submissions = append(b.Submissions, submission)
	return &submission, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Cleanup() error {
	return nil
}
