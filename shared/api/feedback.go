package api

import (
	"bytes"
	"encoding/json"

	"github.com/itchan-dev/feedback/shared/domain"
)

// Envelope is the body of every successful JSON response.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type BoardResponse = Envelope[domain.Board]

type SubmissionResponse = Envelope[domain.Submission]

// SubmitFeedbackRequest is the decoded POST body. Fields stay raw strings;
// the service decides what counts as present or well formed.
type SubmitFeedbackRequest struct {
	Rating   RatingValue `json:"rating"`
	Feedback string      `json:"feedback"`
}

// RatingValue accepts a rating sent either as a JSON number or a string.
type RatingValue string

func (v *RatingValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RatingValue(s)
		return nil
	}
	*v = RatingValue(data)
	return nil
}
