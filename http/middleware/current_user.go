package middleware

import (
	"net/http"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/session"
)

// CurrentUser pulls the roadtrip.User out of the session stored in the *http.Request.Context
// and stashes it in the context with roadtrip.NewUserContext.
//
// When the session carries no User, the request may be hitting an unauthenticated endpoint,
// so CurrentUser hands off without a User; RequireAuthed decides what happens next.
//
// A session whose expiry cannot be extended is deleted and treated as anonymous.
func CurrentUser() Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := r.Context().Value(roadtrip.SessionKey).(session.Session)
			if !ok {
				handler.ServeHTTP(w, r)
				return
			}

			user, err := s.User()
			if err != nil {
				handler.ServeHTTP(w, r)
				return
			}

			if err := s.ResetExpiry(w, r); err != nil {
				s.Delete(w, r) // NOTE(dlk): ignore delete error
				handler.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Cache-control", "no-store")
			w.Header().Add("Pragma", "no-cache")

			handler.ServeHTTP(w, r.Clone(roadtrip.NewUserContext(r.Context(), user)))
		})
	}
}

// RequireAuthed returns a middleware.Adapter that checks whether a roadtrip.User is authenticated,
// and requires they be authenticated.
// When the User is authenticated, RequireAuthed hands off to the next part of the middleware chain.
//
// Authenticated means CurrentUser stashed a User in the request context.
//
// When the User is not authenticated, RequireAuthed redirects with 302 to landingURL
// and the next handler is never called.
func RequireAuthed(landingURL string) Adapter {
	if landingURL == "" {
		landingURL = "/"
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := roadtrip.UserFromContext(r.Context()); !ok {
				http.Redirect(w, r, landingURL, http.StatusFound)
				return
			}

			handler.ServeHTTP(w, r)
		})
	}
}
