// Command migrate creates the schema for the Postgres catalog backend.
// The JSON file backend needs no migration.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		isbn     TEXT PRIMARY KEY,
		title    TEXT NOT NULL,
		author   TEXT NOT NULL,
		position INT  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		book_isbn TEXT NOT NULL REFERENCES books(isbn) ON DELETE CASCADE,
		username  TEXT NOT NULL,
		review    TEXT NOT NULL,
		date      TEXT NOT NULL,
		position  INT  NOT NULL,
		PRIMARY KEY (book_isbn, username)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author ON books (lower(author))`,
	`CREATE INDEX IF NOT EXISTS idx_books_title ON books (lower(title))`,
}

func main() {
	_ = godotenv.Load(".env.local")

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("missing required environment variable: DB_DSN")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Fatalf("cannot ping database: %v", err)
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("migration failed: %v\n%s", err, stmt)
		}
	}
	log.Println("migrations applied")
}
