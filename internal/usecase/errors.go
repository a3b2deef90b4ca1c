package usecase

import "errors"

var (
	// ErrNotFound covers a missing book and an empty search result alike.
	// Zero search matches being an error is observable API behavior kept
	// from the legacy service; see DESIGN.md before "fixing" it.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when registering a username that is
	// already taken (exact, case-sensitive match).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoReviews means the book exists but carries no reviews at all.
	ErrNoReviews = errors.New("no reviews for this book")

	// ErrReviewNotFound means the book has reviews, but none by this user.
	ErrReviewNotFound = errors.New("review not found")
)
