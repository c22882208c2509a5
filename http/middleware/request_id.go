package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/roadtrip"
)

// RequestIDHeader echoes the ID RequestID assigns back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID adds a uuid to the request context under roadtrip.RequestIDKey
// and sets it on the response's RequestIDHeader.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)
			ctx := context.WithValue(r.Context(), roadtrip.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
