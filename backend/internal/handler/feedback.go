package handler

import (
	"bytes"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/feedback/backend/internal/service"
	"github.com/itchan-dev/feedback/shared/api"
	"github.com/itchan-dev/feedback/shared/errors"
	"github.com/itchan-dev/feedback/shared/middleware/metrics"
	"github.com/itchan-dev/feedback/shared/utils"
)

const maxBodyBytes = 64 << 10

func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	board, err := h.feedback.Get(r.Context(), slug)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, api.BoardResponse{
		Message: "feedback retrieved successfully",
		Data:    *board,
	})
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	body, err := decodeSubmission(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}

	submission, err := h.feedback.Submit(r.Context(), service.SubmitRequest{
		Slug:     slug,
		Rating:   string(body.Rating),
		Feedback: body.Feedback,
		Referer:  r.Referer(),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, r, err)
		return
	}
	metrics.RecordSubmission(slug)

	utils.WriteJSON(w, r, http.StatusOK, api.SubmissionResponse{
		Message: "feedback submitted successfully",
		Data:    *submission,
	})
}

// decodeSubmission accepts JSON and HTML form bodies. An empty body decodes
// to an empty request so the missing field is what gets reported.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (api.SubmitFeedbackRequest, error) {
	var body api.SubmitFeedbackRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && err != http.ErrNotMultipart {
			return body, errors.Validation("body is invalid form")
		}
		body.Rating = api.RatingValue(r.PostFormValue("rating"))
		body.Feedback = r.PostFormValue("feedback")
		return body, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return body, errors.Validation("body is invalid json")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body, nil
	}
	if err := utils.Decode(bytes.NewReader(raw), &body); err != nil {
		return body, err
	}
	return body, nil
}
