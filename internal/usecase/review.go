package usecase

import (
	"context"
	"sync"
	"time"

	"bookreviews/internal/entity"
)

// Reviews is the review manager: the access-gated read-modify-write flow
// over the catalog. Both operations run load-mutate-persist on the whole
// document; mu serializes them so two concurrent mutations on the same
// book cannot overwrite each other with stale copies.
type Reviews struct {
	mu    sync.Mutex
	books BookRepository
	now   func() time.Time
}

func NewReviews(books BookRepository) *Reviews {
	return &Reviews{books: books, now: time.Now}
}

// Upsert adds the user's review of the book, or replaces it in place if
// one exists. It returns the book's full review list afterwards and
// whether an existing review was updated rather than inserted.
func (s *Reviews) Upsert(ctx context.Context, isbn, username, text string) ([]entity.Review, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.books.LoadAll(ctx)
	if err != nil {
		return nil, false, err
	}

	idx := findBook(books, isbn)
	if idx < 0 {
		return nil, false, ErrNotFound
	}

	review := entity.Review{
		Username: username,
		Review:   text,
		Date:     s.now().UTC().Format(time.RFC3339),
	}

	updated := false
	for i, r := range books[idx].Reviews {
		if r.Username == username {
			books[idx].Reviews[i] = review
			updated = true
			break
		}
	}
	if !updated {
		books[idx].Reviews = append(books[idx].Reviews, review)
	}

	if err := s.books.ReplaceAll(ctx, books); err != nil {
		return nil, false, err
	}
	return books[idx].Reviews, updated, nil
}

// Delete removes the user's review of the book and returns the remaining
// review list. A user has at most one review per book, so exactly one
// entry is removed.
func (s *Reviews) Delete(ctx context.Context, isbn, username string) ([]entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.books.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := findBook(books, isbn)
	if idx < 0 {
		return nil, ErrNotFound
	}
	// Only an absent review sequence is "no reviews"; an empty-but-present
	// list falls through so a miss reads as "review not found".
	if books[idx].Reviews == nil {
		return nil, ErrNoReviews
	}

	found := -1
	for i, r := range books[idx].Reviews {
		if r.Username == username {
			found = i
			break
		}
	}
	if found < 0 {
		return nil, ErrReviewNotFound
	}

	books[idx].Reviews = append(books[idx].Reviews[:found], books[idx].Reviews[found+1:]...)

	if err := s.books.ReplaceAll(ctx, books); err != nil {
		return nil, err
	}
	return books[idx].Reviews, nil
}

// ListForBook returns a book's review list; ErrNotFound if the book is
// absent. A book without reviews yields an empty, non-nil list.
func (s *Reviews) ListForBook(ctx context.Context, isbn string) ([]entity.Review, error) {
	book, err := s.books.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if book.Reviews == nil {
		return []entity.Review{}, nil
	}
	return book.Reviews, nil
}

func findBook(books []entity.Book, isbn string) int {
	for i := range books {
		if books[i].ISBN == isbn {
			return i
		}
	}
	return -1
}
