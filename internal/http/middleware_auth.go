package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"bookreviews/internal/auth"
	"bookreviews/internal/httpx"
)

// AuthMiddleware gates a handler behind a bearer token. A missing or
// non-Bearer Authorization header is 401; a token that is present but
// fails verification is 403. The four verification failure kinds are
// logged for observability but the client sees one generic answer.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Access token required", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token == "" {
				// "Bearer " with nothing after it is absent credentials,
				// not a bad token
				JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Access token required", nil)
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				log.Printf("auth rejected: request_id=%s reason=%v", httpx.RequestIDFrom(r), tokenFailure(err))
				JSONError(w, http.StatusForbidden, "FORBIDDEN", "Invalid or expired token", nil)
				return
			}

			ctx := httpx.ContextWithUsername(r.Context(), claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFailure(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		return "missing"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenSignature):
		return "signature_invalid"
	default:
		return "invalid"
	}
}
