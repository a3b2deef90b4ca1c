// Command seed writes a starter catalog: to books.json by default, or
// into Postgres when DB_DSN is set (run cmd/migrate first).
package main

import (
	"context"
	"log"
	"os"
	"time"

	"bookreviews/internal/entity"
	"bookreviews/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var starterBooks = []entity.Book{
	{ISBN: "1", Title: "Things Fall Apart", Author: "Chinua Achebe", Reviews: []entity.Review{}},
	{ISBN: "2", Title: "Fairy tales", Author: "Hans Christian Andersen", Reviews: []entity.Review{}},
	{ISBN: "3", Title: "The Divine Comedy", Author: "Dante Alighieri", Reviews: []entity.Review{}},
	{ISBN: "4", Title: "The Epic Of Gilgamesh", Author: "Unknown", Reviews: []entity.Review{}},
	{ISBN: "5", Title: "The Book Of Job", Author: "Unknown", Reviews: []entity.Review{}},
	{ISBN: "6", Title: "One Thousand and One Nights", Author: "Unknown", Reviews: []entity.Review{}},
	{ISBN: "7", Title: "Njal's Saga", Author: "Unknown", Reviews: []entity.Review{}},
	{ISBN: "8", Title: "Pride and Prejudice", Author: "Jane Austen", Reviews: []entity.Review{}},
	{ISBN: "9", Title: "Le Pere Goriot", Author: "Honore de Balzac", Reviews: []entity.Review{}},
	{ISBN: "10", Title: "Molloy, Malone Dies, The Unnamable, the trilogy", Author: "Samuel Beckett", Reviews: []entity.Review{}},
}

func main() {
	_ = godotenv.Load(".env.local")

	ctx := context.Background()

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
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

		if err := store.NewBookPG(pool).ReplaceAll(ctx, starterBooks); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		log.Printf("seeded %d books into postgres", len(starterBooks))
		return
	}

	path := os.Getenv("BOOKS_PATH")
	if path == "" {
		path = "books.json"
	}
	if _, err := os.Stat(path); err == nil {
		log.Fatalf("%s already exists, refusing to overwrite", path)
	}
	if err := store.NewBookJSON(path).ReplaceAll(ctx, starterBooks); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("wrote %d books to %s", len(starterBooks), path)
}
