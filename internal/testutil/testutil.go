package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bookreviews/internal/auth"
	"bookreviews/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

const Secret = "test-secret"

// Catalog is a small fixture catalog shared across handler tests.
func Catalog() []entity.Book {
	return []entity.Book{
		{ISBN: "123", Title: "Dune", Author: "Herbert", Reviews: []entity.Review{}},
		{ISBN: "456", Title: "The Hobbit", Author: "Tolkien", Reviews: []entity.Review{}},
		{ISBN: "789", Title: "The Lord of the Rings", Author: "Tolkien", Reviews: []entity.Review{
			{Username: "bob", Review: "A classic", Date: "2024-01-01T00:00:00Z"},
		}},
	}
}

// WriteCatalog marshals books into a fresh file under t.TempDir and
// returns its path.
func WriteCatalog(t *testing.T, books []entity.Book) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

// Token returns a valid bearer token for username.
func Token(t *testing.T, username string) string {
	t.Helper()
	token, err := auth.GenerateToken(Secret, username)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// ExpiredToken returns a token whose expiry is already in the past.
func ExpiredToken(username string) string {
	c := auth.Claims{
		Sub: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(Secret))
	return token
}

// NewRequest builds a JSON request for handler tests.
func NewRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}
