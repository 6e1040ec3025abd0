package service

import (
	"context"

	"github.com/itchan-dev/feedback/shared/domain"
	"github.com/itchan-dev/feedback/shared/errors"
	"github.com/itchan-dev/feedback/shared/logger"
)

// to mock service in tests
type FeedbackService interface {
	Get(ctx context.Context, slug domain.Slug) (*domain.Board, error)
	Submit(ctx context.Context, req SubmitRequest) (*domain.Submission, error)
	Authorize(ctx context.Context, slug domain.Slug, referer string) (*domain.Board, error)
}

// FeedbackStorage is the record store. AppendSubmission must assign
// the next id (count + 1) atomically with the append.
type FeedbackStorage interface {
	GetBoard(ctx context.Context, slug domain.Slug) (*domain.Board, error)
	AppendSubmission(ctx context.Context, slug domain.Slug, draft domain.SubmissionDraft) (*domain.Submission, error)
}

type SubmissionValidator interface {
	Slug(slug string) error
	Submission(rating, feedback string) (domain.SubmissionDraft, error)
}

// SubmitRequest carries raw, unvalidated input from the transport layer.
type SubmitRequest struct {
	Slug     domain.Slug
	Rating   string
	Feedback string
	Referer  string
}

type Feedback struct {
	storage   FeedbackStorage
	validator SubmissionValidator
}

func NewFeedback(storage FeedbackStorage, validator SubmissionValidator) *Feedback {
	return &Feedback{storage: storage, validator: validator}
}

func (f *Feedback) Get(ctx context.Context, slug domain.Slug) (*domain.Board, error) {
	if err := f.validator.Slug(slug); err != nil {
		return nil, err
	}
	return f.storage.GetBoard(ctx, slug)
}

// Submit validates input, then checks the board exists, then that the referer is allowed.
func (f *Feedback) Submit(ctx context.Context, req SubmitRequest) (*domain.Submission, error) {
	draft, err := f.validator.Submission(req.Rating, req.Feedback)
	if err != nil {
		return nil, err
	}

	board, err := f.storage.GetBoard(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, errors.KindNotFound) {
			return nil, errors.NotFound("no record found for slug: %s", req.Slug)
		}
		return nil, err
	}
	if !board.Allows(req.Referer) {
		logger.FromContext(ctx).Debug("referer not allowed", "slug", req.Slug, "referer", req.Referer)
		return nil, errors.Unauthorized("forbidden")
	}

	submission, err := f.storage.AppendSubmission(ctx, req.Slug, draft)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("feedback submitted", "slug", req.Slug, "submission_id", submission.Id, "rating", submission.Rating)
	return submission, nil
}

// Authorize returns the board if referer may embed it.
func (f *Feedback) Authorize(ctx context.Context, slug domain.Slug, referer string) (*domain.Board, error) {
	board, err := f.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !board.Allows(referer) {
		return nil, errors.Unauthorized("forbidden")
	}
	return board, nil
}
