package http

import (
	"net/http"

	"bookreviews/internal/usecase"
)

// NewRouter builds the full route table. The three catalog lookups share
// one pattern because /books/{kind}/{value} and /books/{isbn}/review
// would otherwise be conflicting ServeMux patterns; the review route is
// strictly more specific, so it wins where both match.
func NewRouter(books usecase.BookRepository, users usecase.UserRepository, reviews *usecase.Reviews, secret string) *http.ServeMux {
	bookHandler := NewBookHandler(books)
	userHandler := NewUserHandler(users, secret)
	reviewHandler := NewReviewHandler(reviews)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"message": "Book review API is running"})
	})

	mux.HandleFunc("GET /books", bookHandler.List)
	mux.HandleFunc("GET /books/{kind}/{value}", bookHandler.GetByPath)
	mux.HandleFunc("GET /books/{isbn}/review", reviewHandler.ListForBook)

	mux.HandleFunc("POST /register", userHandler.Register)
	mux.HandleFunc("POST /login", userHandler.Login)

	requireAuth := AuthMiddleware(secret)
	mux.Handle("PUT /books/{isbn}/review", requireAuth(http.HandlerFunc(reviewHandler.Upsert)))
	mux.Handle("DELETE /books/{isbn}/review", requireAuth(http.HandlerFunc(reviewHandler.Delete)))

	return mux
}
