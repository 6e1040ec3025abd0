package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/feedback/shared/domain"
	"github.com/itchan-dev/feedback/shared/errors"
)

// SubmissionValidator checks raw submission input in a fixed order;
// the first failing rule is the one reported.
type SubmissionValidator struct {
	validate *validator.Validate
}

func NewSubmissionValidator() *SubmissionValidator {
	return &SubmissionValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *SubmissionValidator) Slug(slug string) error {
	if err := v.validate.Var(slug, "required"); err != nil {
		return errors.Validation("must include a slug")
	}
	return nil
}

func (v *SubmissionValidator) Submission(rating, feedback string) (domain.SubmissionDraft, error) {
	if err := v.validate.Var(rating, "required"); err != nil {
		return domain.SubmissionDraft{}, errors.Validation("must include a rating")
	}
	if err := v.validate.Var(feedback, "required"); err != nil {
		return domain.SubmissionDraft{}, errors.Validation("must include feedback")
	}

	n, err := strconv.Atoi(strings.TrimSpace(rating))
	if err != nil || v.validate.Var(n, fmt.Sprintf("min=%d,max=%d", domain.MinRating, domain.MaxRating)) != nil {
		return domain.SubmissionDraft{}, errors.Validation("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	trimmed := strings.TrimSpace(feedback)
	if err := v.validate.Var(trimmed, "required"); err != nil {
		return domain.SubmissionDraft{}, errors.Validation("feedback must not be empty")
	}
	if err := v.validate.Var(trimmed, fmt.Sprintf("max=%d", domain.MaxFeedbackLength)); err != nil {
		return domain.SubmissionDraft{}, errors.Validation("feedback must be %d characters or less", domain.MaxFeedbackLength)
	}

	// Stored verbatim once trimmed; clients render it as text.
	return domain.SubmissionDraft{Rating: n, Feedback: trimmed}, nil
}
