package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bookreviews/internal/httpx"
	"bookreviews/internal/usecase"
)

type ReviewHandler struct {
	reviews *usecase.Reviews
}

func NewReviewHandler(reviews *usecase.Reviews) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ListForBook serves GET /books/{isbn}/review, no auth required.
func (h *ReviewHandler) ListForBook(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")

	reviews, err := h.reviews.ListForBook(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		log.Printf("review list failed: request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		JSONError(w, http.StatusInternalServerError, "STORE_ERROR", "Internal server error", nil)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"isbn":    isbn,
		"reviews": reviews,
	})
}

type upsertReviewReq struct {
	Review string `json:"review" validate:"required"`
}

// Upsert serves PUT /books/{isbn}/review. The authenticated user's
// existing review is replaced in place; otherwise a new one is appended.
func (h *ReviewHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	username := httpx.UsernameFrom(r)

	var req upsertReviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Review text is required", details)
		return
	}

	reviews, updated, err := h.reviews.Upsert(r.Context(), isbn, username, req.Review)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		log.Printf("review upsert failed: request_id=%s isbn=%s error=%v", httpx.RequestIDFrom(r), isbn, err)
		JSONError(w, http.StatusInternalServerError, "STORE_ERROR", "Internal server error", nil)
		return
	}

	message := "Review added successfully"
	if updated {
		message = "Review updated successfully"
	}
	JSON(w, http.StatusOK, map[string]any{
		"message": message,
		"isbn":    isbn,
		"reviews": reviews,
	})
}

// Delete serves DELETE /books/{isbn}/review, removing the authenticated
// user's review only.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	username := httpx.UsernameFrom(r)

	reviews, err := h.reviews.Delete(r.Context(), isbn, username)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, usecase.ErrNoReviews):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "No reviews found for this book", nil)
		case errors.Is(err, usecase.ErrReviewNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
		default:
			log.Printf("review delete failed: request_id=%s isbn=%s error=%v", httpx.RequestIDFrom(r), isbn, err)
			JSONError(w, http.StatusInternalServerError, "STORE_ERROR", "Internal server error", nil)
		}
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Review deleted successfully",
		"isbn":    isbn,
		"reviews": reviews,
	})
}
