package http

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"bookreviews/internal/entity"
	"bookreviews/internal/store"
	"bookreviews/internal/testutil"
	"bookreviews/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookHandler_List(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/books", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var books []entity.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
	assert.Len(t, books, 3)
}

func TestBookHandler_ListStoreError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))
	books := store.NewBookJSON(path)
	router := NewRouter(books, store.NewUserMem(), usecase.NewReviews(books), testutil.Secret)

	w := doJSON(t, router, http.MethodGet, "/books", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), path, "store details stay server-side")
}

func TestBookHandler_GetByISBN(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/books/isbn/123", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var book entity.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.Equal(t, "Dune", book.Title)

	w = doJSON(t, router, http.MethodGet, "/books/isbn/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookHandler_SearchRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedCount  int
	}{
		{name: "author match", path: "/books/author/tolkien", expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "author match uppercase", path: "/books/author/TOLKIEN", expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "author no match is 404", path: "/books/author/asimov", expectedStatus: http.StatusNotFound},
		{name: "title substring", path: "/books/title/hobbit", expectedStatus: http.StatusOK, expectedCount: 1},
		{name: "title no match is 404", path: "/books/title/dracula", expectedStatus: http.StatusNotFound},
		{name: "unknown lookup kind", path: "/books/genre/fantasy", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var books []entity.Book
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
				assert.Len(t, books, tt.expectedCount)
			} else {
				// every 404 carries the same JSON error envelope
				var body ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "NOT_FOUND", body.Error.Code)
			}
		})
	}
}
