package usecase

import (
	"context"

	"bookreviews/internal/entity"
)

// UserRepository is the credential store contract.
type UserRepository interface {
	// Create stores a new user. ErrAlreadyExists if the username is taken.
	// The duplicate check and the insert must happen under one lock.
	Create(ctx context.Context, u *entity.User) error
	// GetByUsername returns the user or ErrNotFound.
	GetByUsername(ctx context.Context, username string) (entity.User, error)
}
