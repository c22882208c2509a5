package handler

import (
	"github.com/xy-planning-network/roadtrip/http/middleware"
	"github.com/xy-planning-network/roadtrip/http/resp"
	"github.com/xy-planning-network/roadtrip/logger"
)

// An Opt configures a *Handler when constructing a new one.
type Opt func(*Handler)

// WithIdempotencyCache sets where responses to trip creations carrying an Idempotency-Key are kept.
//
// Without it, middleware.Idempotent keeps them in memory.
func WithIdempotencyCache(c middleware.IdempotencyCacher) Opt {
	return func(h *Handler) {
		h.idem = c
	}
}

// WithLandingURL sets where unauthenticated requests and failed logins are sent.
func WithLandingURL(u string) Opt {
	return func(h *Handler) {
		if u != "" {
			h.landingURL = u
		}
	}
}

// WithLogger sets the logger.Logger the Handler uses.
func WithLogger(l logger.Logger) Opt {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithPostLoginURL sets where a successful login is sent.
func WithPostLoginURL(u string) Opt {
	return func(h *Handler) {
		if u != "" {
			h.postLoginURL = u
		}
	}
}

// WithResponder sets the *resp.Responder the Handler uses.
func WithResponder(d *resp.Responder) Opt {
	return func(h *Handler) {
		h.responder = d
	}
}
