package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookreviews/internal/auth"
	"bookreviews/internal/httpx"
	"bookreviews/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	var seenUsername string
	protected := AuthMiddleware(testutil.Secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUsername = httpx.UsernameFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "valid token",
			header:         "Bearer " + testutil.Token(t, "alice"),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bearer with empty token",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "expired token",
			header:         "Bearer " + testutil.ExpiredToken("alice"),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "wrong signing secret",
			header:         "Bearer " + wrongSecretToken(t),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUsername = ""
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPut, "/books/123/review", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			protected.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "alice", seenUsername)
			} else {
				assert.Empty(t, seenUsername)
			}
		})
	}
}

func wrongSecretToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("some-other-secret", "alice")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}
