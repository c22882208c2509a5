package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/session"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under roadtrip.SessionKey.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// NOTE(dlk): gorilla returns a fresh session alongside a decode error,
			// so an unreadable cookie is treated as an anonymous session
			s, _ := store.GetSession(r)
			ctx := context.WithValue(r.Context(), roadtrip.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
