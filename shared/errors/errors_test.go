package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: NotFound("not found"), expected: http.StatusNotFound},
		{name: "validation", err: Validation("must include a rating"), expected: http.StatusUnprocessableEntity},
		{name: "unauthorized", err: Unauthorized("forbidden"), expected: http.StatusUnauthorized},
		{name: "wrapped kind", err: fmt.Errorf("get board: %w", NotFound("no record")), expected: http.StatusNotFound},
		{name: "plain error", err: stderrors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("rating must be between %d and %d", 1, 5)))
	assert.Equal(t, KindInternal, KindOf(stderrors.New("boom")))
	assert.True(t, Is(fmt.Errorf("wrap: %w", Unauthorized("forbidden")), KindUnauthorized))
	assert.False(t, Is(nil, KindInternal))
	assert.Equal(t, "rating must be between 1 and 5", Validation("rating must be between %d and %d", 1, 5).Error())
}
