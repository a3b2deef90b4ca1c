package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"
)

// BookJSON keeps the catalog in one flat JSON file: an array of books,
// read and parsed on every load, rewritten wholesale on every persist.
// The mutex only guards the file handle; callers doing read-modify-write
// (the review manager) hold their own lock across the whole sequence.
type BookJSON struct {
	mu   sync.RWMutex
	path string
}

func NewBookJSON(path string) *BookJSON {
	return &BookJSON{path: path}
}

func (r *BookJSON) LoadAll(ctx context.Context) ([]entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.readLocked()
}

func (r *BookJSON) readLocked() ([]entity.Book, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		// A store that was never written is an empty catalog, not an error.
		if errors.Is(err, os.ErrNotExist) {
			return []entity.Book{}, nil
		}
		return nil, fmt.Errorf("read catalog %s: %w", r.path, err)
	}
	var books []entity.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", r.path, err)
	}
	if books == nil {
		books = []entity.Book{}
	}
	return books, nil
}

func (r *BookJSON) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	books, err := r.LoadAll(ctx)
	if err != nil {
		return entity.Book{}, err
	}
	for _, b := range books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return entity.Book{}, usecase.ErrNotFound
}

func (r *BookJSON) SearchByAuthor(ctx context.Context, author string) ([]entity.Book, error) {
	return r.search(ctx, author, func(b entity.Book) string { return b.Author })
}

func (r *BookJSON) SearchByTitle(ctx context.Context, title string) ([]entity.Book, error) {
	return r.search(ctx, title, func(b entity.Book) string { return b.Title })
}

// search is a case-insensitive substring match. Zero matches is
// ErrNotFound, matching the legacy API's observable behavior.
func (r *BookJSON) search(ctx context.Context, query string, field func(entity.Book) string) ([]entity.Book, error) {
	books, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var matched []entity.Book
	for _, b := range books {
		if strings.Contains(strings.ToLower(field(b)), q) {
			matched = append(matched, b)
		}
	}
	if len(matched) == 0 {
		return nil, usecase.ErrNotFound
	}
	return matched, nil
}

func (r *BookJSON) ReplaceAll(ctx context.Context, books []entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", r.path, err)
	}
	return nil
}
