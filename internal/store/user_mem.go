package store

import (
	"context"
	"sync"

	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

// UserMem holds registered users in process memory. Accounts do not
// survive a restart; that is a documented property of the service, not an
// oversight. The lock covers the duplicate check and the insert together
// so two concurrent registrations of one username cannot both succeed.
type UserMem struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func NewUserMem() *UserMem {
	return &UserMem{users: make(map[string]entity.User)}
}

func (r *UserMem) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.Username]; exists {
		return usecase.ErrAlreadyExists
	}
	r.users[u.Username] = *u
	return nil
}

func (r *UserMem) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, exists := r.users[username]
	if !exists {
		return entity.User{}, usecase.ErrNotFound
	}
	return u, nil
}
