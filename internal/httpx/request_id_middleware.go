package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an id, minting a uuid when
// the caller did not send one. The id is echoed back in the response
// header and carried in the context for the access log and error logs.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
	})
}
