package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/auth"
	"github.com/xy-planning-network/roadtrip/docstore"
	"github.com/xy-planning-network/roadtrip/http/middleware"
	"github.com/xy-planning-network/roadtrip/http/session"
	"github.com/xy-planning-network/roadtrip/logger"
)

// A RangerOption configures a *Ranger under construction.
//
// Anything a RangerOption leaves unset, New configures from environment variables.
type RangerOption func(rng *Ranger) error

// WithAuth exposes the provided auth.AuthService to the app.
func WithAuth(as auth.AuthService) RangerOption {
	return func(rng *Ranger) error {
		if as == nil {
			return fmt.Errorf("%w: nil auth.AuthService", roadtrip.ErrBadConfig)
		}

		rng.auth = as
		return nil
	}
}

// WithContext exposes the provided context.Context to the app.
// Canceling ctx stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		rng.ctx, rng.cancel = context.WithCancel(ctx)
		return nil
	}
}

// WithEnv sets the Environment the app runs in.
//
// Without WithEnv, the ENVIRONMENT env var is read, falling back to roadtrip.Development.
func WithEnv(env roadtrip.Environment) RangerOption {
	return func(rng *Ranger) error {
		if err := env.Valid(); err != nil {
			return err
		}

		rng.env = env
		return nil
	}
}

// WithIdempotencyCache sets where responses to idempotent trip creations are kept.
func WithIdempotencyCache(c middleware.IdempotencyCacher) RangerOption {
	return func(rng *Ranger) error {
		rng.idem = c
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithServer exposes the *http.Server to the app.
// Its Handler is replaced by the app's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) error {
		rng.sessions = store
		return nil
	}
}

// WithStore exposes the docstore.Store to the app.
//
// WithStore assumes a connection has already been established.
func WithStore(store docstore.Store) RangerOption {
	return func(rng *Ranger) error {
		if store == nil {
			return fmt.Errorf("%w: nil docstore.Store", roadtrip.ErrBadConfig)
		}

		rng.store = store
		return nil
	}
}
