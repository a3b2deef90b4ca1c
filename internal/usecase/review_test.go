package usecase_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"bookreviews/internal/entity"
	"bookreviews/internal/store"
	"bookreviews/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewService(t *testing.T, books []entity.Book) (*usecase.Reviews, *store.BookJSON) {
	t.Helper()
	repo := store.NewBookJSON(filepath.Join(t.TempDir(), "books.json"))
	require.NoError(t, repo.ReplaceAll(context.Background(), books))
	return usecase.NewReviews(repo), repo
}

func TestReviews_UpsertInsertThenUpdate(t *testing.T) {
	svc, _ := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
	})
	ctx := context.Background()

	reviews, updated, err := svc.Upsert(ctx, "123", "alice", "Great")
	require.NoError(t, err)
	assert.False(t, updated)
	require.Len(t, reviews, 1)
	assert.Equal(t, "alice", reviews[0].Username)
	assert.Equal(t, "Great", reviews[0].Review)

	_, err = time.Parse(time.RFC3339, reviews[0].Date)
	assert.NoError(t, err, "review date must be RFC3339")

	// second upsert by the same user replaces in place
	reviews, updated, err = svc.Upsert(ctx, "123", "alice", "Even better")
	require.NoError(t, err)
	assert.True(t, updated)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Even better", reviews[0].Review)
}

func TestReviews_UpsertUnknownBook(t *testing.T) {
	svc, _ := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
	})

	_, _, err := svc.Upsert(context.Background(), "999", "alice", "text")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestReviews_UpsertPersists(t *testing.T) {
	svc, repo := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
	})
	ctx := context.Background()

	_, _, err := svc.Upsert(ctx, "123", "alice", "Great")
	require.NoError(t, err)

	book, err := repo.GetByISBN(ctx, "123")
	require.NoError(t, err)
	require.Len(t, book.Reviews, 1)
	assert.Equal(t, "Great", book.Reviews[0].Review)
}

func TestReviews_DeleteIsIdempotentFailing(t *testing.T) {
	svc, _ := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
	})
	ctx := context.Background()

	_, _, err := svc.Upsert(ctx, "123", "alice", "Great")
	require.NoError(t, err)
	_, _, err = svc.Upsert(ctx, "123", "bob", "Fine")
	require.NoError(t, err)

	remaining, err := svc.Delete(ctx, "123", "alice")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "bob", remaining[0].Username)

	// deleting again fails: the review is gone
	_, err = svc.Delete(ctx, "123", "alice")
	assert.ErrorIs(t, err, usecase.ErrReviewNotFound)
}

func TestReviews_DeleteErrorKinds(t *testing.T) {
	// "123" has an empty-but-present review list (the JSON store
	// round-trips [] as a non-nil slice); "321" has no list at all.
	svc, _ := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
		{ISBN: "321", Title: "Emma", Author: "Austen", Reviews: nil},
		{ISBN: "456", Title: "The Hobbit", Author: "Tolkien", Reviews: []entity.Review{
			{Username: "bob", Review: "Fine", Date: "2024-01-01T00:00:00Z"},
		}},
	})
	ctx := context.Background()

	_, err := svc.Delete(ctx, "999", "alice")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	// absent sequence vs empty sequence are distinct answers
	_, err = svc.Delete(ctx, "321", "alice")
	assert.ErrorIs(t, err, usecase.ErrNoReviews)

	_, err = svc.Delete(ctx, "123", "alice")
	assert.ErrorIs(t, err, usecase.ErrReviewNotFound)

	_, err = svc.Delete(ctx, "456", "alice")
	assert.ErrorIs(t, err, usecase.ErrReviewNotFound)
}

func TestReviews_FullScenario(t *testing.T) {
	svc, _ := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
	})
	ctx := context.Background()

	reviews, updated, err := svc.Upsert(ctx, "123", "alice", "Great")
	require.NoError(t, err)
	assert.False(t, updated)
	require.Len(t, reviews, 1)

	reviews, updated, err = svc.Upsert(ctx, "123", "alice", "Even better")
	require.NoError(t, err)
	assert.True(t, updated)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Even better", reviews[0].Review)

	reviews, err = svc.Delete(ctx, "123", "alice")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviews_ConcurrentUpsertsLoseNothing(t *testing.T) {
	svc, repo := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
	})
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, err := svc.Upsert(ctx, "123", fmt.Sprintf("user-%d", n), "concurrent")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	book, err := repo.GetByISBN(ctx, "123")
	require.NoError(t, err)
	assert.Len(t, book.Reviews, writers)
}

func TestReviews_ListForBook(t *testing.T) {
	svc, _ := newReviewService(t, []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: nil},
	})
	ctx := context.Background()

	reviews, err := svc.ListForBook(ctx, "123")
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	_, err = svc.ListForBook(ctx, "999")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
