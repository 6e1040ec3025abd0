//go:build integration

package pg

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/itchan-dev/feedback/shared/domain"
	"github.com/itchan-dev/feedback/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nextBoardId = 1000

// seedTestBoard creates a board with a unique slug and id.
func seedTestBoard(t *testing.T, submissions ...domain.Submission) domain.Board {
	t.Helper()
	nextBoardId++
	b := domain.Board{
		Id:             nextBoardId,
		Slug:           fmt.Sprintf("test-%d-%d", nextBoardId, time.Now().UnixNano()),
		AllowedDomains: domain.Domains{"https://example.com/"},
		Submissions:    submissions,
	}
	require.NoError(t, storage.Seed(context.Background(), []domain.Board{b}))
	return b
}

func TestSeededDefaults(t *testing.T) {
	b, err := storage.GetBoard(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Id)
	assert.Equal(t, domain.Domains{"http://localhost/", "https://embeddable-vue-component.jaw.dev/"}, b.AllowedDomains)
	require.NotEmpty(t, b.Submissions)
	assert.Equal(t, "so bad", b.Submissions[0].Feedback)
}

func TestGetBoard(t *testing.T) {
	ctx := context.Background()

	t.Run("missing board", func(t *testing.T) {
		_, err := storage.GetBoard(ctx, "does-not-exist")
		assert.True(t, errors.Is(err, errors.KindNotFound))
	})

	t.Run("board without submissions", func(t *testing.T) {
		b := seedTestBoard(t)
		got, err := storage.GetBoard(ctx, b.Slug)
		require.NoError(t, err)
		assert.Equal(t, b.Slug, got.Slug)
		assert.NotNil(t, got.Submissions)
		assert.Empty(t, got.Submissions)
	})
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	b := seedTestBoard(t, domain.Submission{Id: 1, Rating: 4, Feedback: "seeded"})

	b.AllowedDomains = domain.Domains{"https://other.example/"}
	require.NoError(t, storage.Seed(ctx, []domain.Board{b}))

	got, err := storage.GetBoard(ctx, b.Slug)
	require.NoError(t, err)
	assert.Len(t, got.Submissions, 1, "seed submissions are not duplicated")
	assert.Equal(t, domain.Domains{"https://other.example/"}, got.AllowedDomains)
}

func TestAppendSubmission(t *testing.T) {
	ctx := context.Background()

	t.Run("ids continue after seed data", func(t *testing.T) {
		b := seedTestBoard(t, domain.Submission{Id: 1, Rating: 5, Feedback: "seeded"})

		for want := 2; want <= 4; want++ {
			sub, err := storage.AppendSubmission(ctx, b.Slug, domain.SubmissionDraft{Rating: 3, Feedback: "ok"})
			require.NoError(t, err)
			assert.Equal(t, want, sub.Id)
		}

		got, err := storage.GetBoard(ctx, b.Slug)
		require.NoError(t, err)
		require.Len(t, got.Submissions, 4)
		assert.Equal(t, domain.Submission{Id: 4, Rating: 3, Feedback: "ok"}, got.Submissions[3])
	})

	t.Run("missing board", func(t *testing.T) {
		_, err := storage.AppendSubmission(ctx, "does-not-exist", domain.SubmissionDraft{Rating: 3, Feedback: "ok"})
		assert.True(t, errors.Is(err, errors.KindNotFound))
	})

	t.Run("concurrent appends", func(t *testing.T) {
		b := seedTestBoard(t)
		const n = 20

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := storage.AppendSubmission(ctx, b.Slug, domain.SubmissionDraft{Rating: 2, Feedback: "x"})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := storage.GetBoard(ctx, b.Slug)
		require.NoError(t, err)
		require.Len(t, got.Submissions, n)
		for i, sub := range got.Submissions {
			assert.Equal(t, i+1, sub.Id)
		}
	})
}

func TestPing(t *testing.T) {
	assert.NoError(t, storage.Ping(context.Background()))
}
