package store

import (
	"context"
	"errors"
	"fmt"

	"bookreviews/internal/entity"
	"bookreviews/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookPG implements the same whole-document catalog contract on Postgres.
// ReplaceAll is a transactional delete-and-reinsert, so the semantics stay
// identical to the file store; it exists so a deployment can move off the
// flat file without touching the HTTP contract. Schema in cmd/migrate.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) LoadAll(ctx context.Context) ([]entity.Book, error) {
	const booksSQL = `
	SELECT isbn, title, author
	FROM books
	ORDER BY position
	`
	rows, err := r.db.Query(ctx, booksSQL)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var books []entity.Book
	byISBN := map[string]int{}
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		b.Reviews = []entity.Review{}
		byISBN[b.ISBN] = len(books)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	const reviewsSQL = `
	SELECT book_isbn, username, review, date
	FROM reviews
	ORDER BY book_isbn, position
	`
	reviewRows, err := r.db.Query(ctx, reviewsSQL)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	defer reviewRows.Close()

	for reviewRows.Next() {
		var isbn string
		var rv entity.Review
		if err := reviewRows.Scan(&isbn, &rv.Username, &rv.Review, &rv.Date); err != nil {
			return nil, fmt.Errorf("load reviews: %w", err)
		}
		if i, ok := byISBN[isbn]; ok {
			books[i].Reviews = append(books[i].Reviews, rv)
		}
	}
	if err := reviewRows.Err(); err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	if books == nil {
		books = []entity.Book{}
	}
	return books, nil
}

func (r *BookPG) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	const query = `
	SELECT isbn, title, author
	FROM books
	WHERE isbn = $1
	LIMIT 1
	`
	var b entity.Book
	if err := r.db.QueryRow(ctx, query, isbn).Scan(&b.ISBN, &b.Title, &b.Author); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	reviews, err := r.reviewsFor(ctx, isbn)
	if err != nil {
		return entity.Book{}, err
	}
	b.Reviews = reviews
	return b, nil
}

func (r *BookPG) reviewsFor(ctx context.Context, isbn string) ([]entity.Review, error) {
	const query = `
	SELECT username, review, date
	FROM reviews
	WHERE book_isbn = $1
	ORDER BY position
	`
	rows, err := r.db.Query(ctx, query, isbn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := []entity.Review{}
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.Username, &rv.Review, &rv.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *BookPG) SearchByAuthor(ctx context.Context, author string) ([]entity.Book, error) {
	return r.search(ctx, "author", author)
}

func (r *BookPG) SearchByTitle(ctx context.Context, title string) ([]entity.Book, error) {
	return r.search(ctx, "title", title)
}

func (r *BookPG) search(ctx context.Context, column, query string) ([]entity.Book, error) {
	// column is one of two trusted literals, never user input.
	sql := fmt.Sprintf(`
	SELECT isbn, title, author
	FROM books
	WHERE %s ILIKE '%%' || $1 || '%%'
	ORDER BY position
	`, column)
	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matched []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author); err != nil {
			return nil, err
		}
		matched = append(matched, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range matched {
		reviews, err := r.reviewsFor(ctx, matched[i].ISBN)
		if err != nil {
			return nil, err
		}
		matched[i].Reviews = reviews
	}
	if len(matched) == 0 {
		return nil, usecase.ErrNotFound
	}
	return matched, nil
}

func (r *BookPG) ReplaceAll(ctx context.Context, books []entity.Book) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reviews`); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}

	const insertBook = `
	INSERT INTO books (isbn, title, author, position)
	VALUES ($1, $2, $3, $4)
	`
	const insertReview = `
	INSERT INTO reviews (book_isbn, username, review, date, position)
	VALUES ($1, $2, $3, $4, $5)
	`
	for i, b := range books {
		if _, err := tx.Exec(ctx, insertBook, b.ISBN, b.Title, b.Author, i); err != nil {
			return fmt.Errorf("persist book %s: %w", b.ISBN, err)
		}
		for j, rv := range b.Reviews {
			if _, err := tx.Exec(ctx, insertReview, b.ISBN, rv.Username, rv.Review, rv.Date, j); err != nil {
				return fmt.Errorf("persist review %s/%s: %w", b.ISBN, rv.Username, err)
			}
		}
	}
	return tx.Commit(ctx)
}
