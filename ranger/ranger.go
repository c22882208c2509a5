package ranger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/auth"
	"github.com/xy-planning-network/roadtrip/docstore"
	"github.com/xy-planning-network/roadtrip/http/handler"
	"github.com/xy-planning-network/roadtrip/http/middleware"
	"github.com/xy-planning-network/roadtrip/http/router"
	"github.com/xy-planning-network/roadtrip/http/session"
	"github.com/xy-planning-network/roadtrip/logger"
)

// A Ranger manages and exposes all components of roadtrip to one another.
type Ranger struct {
	ctx      context.Context
	cancel   context.CancelFunc
	auth     auth.AuthService
	env      roadtrip.Environment
	idem     middleware.IdempotencyCacher
	l        logger.Logger
	router   *router.Router
	sessions session.SessionStorer
	srv      *http.Server
	store    docstore.Store
	url      *url.URL
}

// New constructs a Ranger from the provided options.
// Whatever the options leave unset is configured from environment variables afterwards,
// so a component passed in is never also connected to by default.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	r.ctx, r.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", roadtrip.ErrBadConfig, err)
		}
	}

	if err := r.setDefaults(); err != nil {
		r.cancel()
		return nil, err
	}

	return r, nil
}

// setDefaults configures every component New's options did not.
func (r *Ranger) setDefaults() error {
	var err error
	if r.env == "" {
		r.env = roadtrip.EnvVarOrEnv(environmentEnvVar, roadtrip.Development)
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	r.url = roadtrip.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
	if r.url == nil {
		return fmt.Errorf("%w: %s is not a valid URL", roadtrip.ErrBadConfig, BaseURLEnvVar)
	}

	if r.auth == nil {
		if r.auth, err = defaultAuth(r.env, r.url, r.l); err != nil {
			return err
		}
	}

	if r.sessions == nil {
		if r.sessions, err = defaultSessionStore(r.env, r.l); err != nil {
			return err
		}
	}

	if r.idem == nil {
		if r.idem, err = defaultIdempotencyCache(); err != nil {
			return err
		}
	}

	if r.store == nil {
		if r.store, err = defaultStore(r.ctx, r.env, r.l); err != nil {
			return err
		}
	}

	h := handler.New(
		r.store,
		r.auth,
		handler.WithLogger(r.l),
		handler.WithIdempotencyCache(r.idem),
	)
	r.router = defaultRouter(r.env, h, r.sessions, r.l)

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}
	r.srv.Handler = r.router

	r.l.Debug(fmt.Sprintf("configured %s app at %s with %T", r.env, r.url, r.store), nil)

	return nil
}

// Cancel stops Guide.
func (r *Ranger) Cancel() { r.cancel() }

func (r *Ranger) EmitEnv() roadtrip.Environment           { return r.env }
func (r *Ranger) EmitLogger() logger.Logger               { return r.l }
func (r *Ranger) EmitSessionStore() session.SessionStorer { return r.sessions }
func (r *Ranger) EmitStore() docstore.Store               { return r.store }

// ServeHTTP responds to an HTTP request through the app's router.
func (r *Ranger) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Guide begins the web server.
//
// These, and (*Ranger).Cancel, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("%w: could not listen: %s", roadtrip.ErrUnavailable, err)
			r.l.Error(err.Error(), nil)
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		r.cancel()
		return errors.Join(err, r.Shutdown())
	case <-r.ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shuts down the web server, then closes the connections it was using.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	var errs []error
	if err := r.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs = append(errs, fmt.Errorf("could not shutdown: %w", err))
	}

	if err := r.store.Close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("could not close store: %w", err))
	}

	if c, ok := r.idem.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("could not close idempotency cache: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
