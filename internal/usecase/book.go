package usecase

import (
	"context"

	"bookreviews/internal/entity"
)

// BookRepository is the catalog contract. The catalog is a whole-document
// store: mutations load everything, change it in memory and write
// everything back through ReplaceAll. Implementations sit behind this
// interface so the backing store can change without touching the HTTP
// contract.
type BookRepository interface {
	// LoadAll returns every book in catalog order. A store that does not
	// exist yet yields an empty catalog; an unreadable or malformed store
	// is an error.
	LoadAll(ctx context.Context) ([]entity.Book, error)
	// GetByISBN returns the book with exactly this ISBN, or ErrNotFound.
	GetByISBN(ctx context.Context, isbn string) (entity.Book, error)
	// SearchByAuthor returns books whose author contains the query,
	// case-insensitively. Zero matches is ErrNotFound.
	SearchByAuthor(ctx context.Context, author string) ([]entity.Book, error)
	// SearchByTitle is SearchByAuthor against the title field.
	SearchByTitle(ctx context.Context, title string) ([]entity.Book, error)
	// ReplaceAll overwrites the whole catalog with books. No partial writes.
	ReplaceAll(ctx context.Context, books []entity.Book) error
}
