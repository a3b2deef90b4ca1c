package http

import (
	"errors"
	"log"
	"net/http"

	"bookreviews/internal/httpx"
	"bookreviews/internal/usecase"
)

type BookHandler struct {
	repo usecase.BookRepository
}

func NewBookHandler(repo usecase.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

// List returns the full catalog.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.repo.LoadAll(r.Context())
	if err != nil {
		log.Printf("catalog load failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		JSONError(w, http.StatusInternalServerError, "STORE_ERROR", "Internal server error", nil)
		return
	}
	JSON(w, http.StatusOK, books)
}

// GetByPath serves the three lookup routes /books/{kind}/{value} where
// kind is isbn, author or title.
func (h *BookHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	value := r.PathValue("value")

	switch kind {
	case "isbn":
		book, err := h.repo.GetByISBN(r.Context(), value)
		if err != nil {
			h.lookupError(w, r, err, "Book not found")
			return
		}
		JSON(w, http.StatusOK, book)
	case "author":
		books, err := h.repo.SearchByAuthor(r.Context(), value)
		if err != nil {
			h.lookupError(w, r, err, "No books found by this author")
			return
		}
		JSON(w, http.StatusOK, books)
	case "title":
		books, err := h.repo.SearchByTitle(r.Context(), value)
		if err != nil {
			h.lookupError(w, r, err, "No books found with this title")
			return
		}
		JSON(w, http.StatusOK, books)
	default:
		JSONError(w, http.StatusNotFound, "NOT_FOUND", "Unknown lookup", nil)
	}
}

func (h *BookHandler) lookupError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", notFoundMsg, nil)
		return
	}
	log.Printf("catalog load failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
	JSONError(w, http.StatusInternalServerError, "STORE_ERROR", "Internal server error", nil)
}
