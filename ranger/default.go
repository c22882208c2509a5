package ranger

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/securecookie"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/auth"
	"github.com/xy-planning-network/roadtrip/docstore"
	"github.com/xy-planning-network/roadtrip/docstore/memory"
	"github.com/xy-planning-network/roadtrip/docstore/mongo"
	"github.com/xy-planning-network/roadtrip/http/handler"
	"github.com/xy-planning-network/roadtrip/http/middleware"
	"github.com/xy-planning-network/roadtrip/http/router"
	"github.com/xy-planning-network/roadtrip/http/session"
	"github.com/xy-planning-network/roadtrip/logger"
	"github.com/xy-planning-network/roadtrip/postgres"
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultLogger constructs the logger.Logger used across the app.
//
// If SENTRY_DSN is set, logger.New returns a *logger.SentryLogger.
func defaultLogger(env roadtrip.Environment) logger.Logger {
	return logger.New(
		logger.WithEnv(env),
		logger.WithLevel(logger.NewLogLevel(os.Getenv(logLevelEnvVar))),
	)
}

// defaultStore connects to the document store DOCUMENT_STORE names.
//
// When DOCUMENT_STORE is not set, environments that can use service stubs keep documents in memory;
// all others connect to MongoDB.
func defaultStore(ctx context.Context, env roadtrip.Environment, l logger.Logger) (docstore.Store, error) {
	kind := strings.ToLower(os.Getenv(documentStoreEnvVar))
	if kind == "" {
		kind = storeMongo
		if env.CanUseServiceStub() {
			kind = storeMemory
		}
	}

	switch kind {
	case storeMemory:
		if !env.CanUseServiceStub() {
			l.Warn(fmt.Sprintf("keeping documents in memory in %s", env), nil)
		}

		return memory.New(), nil

	case storeMongo:
		store, err := mongo.Connect(ctx, NewMongoConfig())
		if err != nil {
			return nil, err
		}

		return store, nil

	case storePostgres:
		db, err := postgres.Connect(NewPostgresConfig(env), postgres.Migrations, env)
		if err != nil {
			return nil, err
		}

		return postgres.NewDocumentStore(db), nil

	default:
		return nil, fmt.Errorf("%w: unknown %s %q", roadtrip.ErrBadConfig, documentStoreEnvVar, kind)
	}
}

// defaultAuth constructs the auth.AuthService handling the OAuth handshake with Google.
//
// Without GOOGLE_CLIENT_ID, environments that can use service stubs log everyone in as stubUser.
func defaultAuth(env roadtrip.Environment, baseURL *url.URL, l logger.Logger) (auth.AuthService, error) {
	redirect := roadtrip.EnvVarOrString(googleRedirectURLEnvVar, baseURL.JoinPath(callbackPath).String())

	if os.Getenv(googleClientIDEnvVar) == "" && env.CanUseServiceStub() {
		l.Warn("no "+googleClientIDEnvVar+" set, logging everyone in as "+stubUser.DisplayName, nil)
		return auth.NewStub(redirect, stubUser), nil
	}

	svc, err := auth.NewService(auth.Config{
		ClientID:     os.Getenv(googleClientIDEnvVar),
		ClientSecret: os.Getenv(googleClientSecretEnvVar),
		RedirectURL:  redirect,
		JWTKey:       os.Getenv(jwtKeyEnvVar),
	})
	if err != nil {
		return nil, err
	}

	return svc, nil
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// defaultSessionStore relies on these env vars:
//   - SESSION_NAME
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//   - SESSION_MAX_AGE
//   - REDIS_URL
//   - REDIS_PASSWORD
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
// Environments that can use service stubs generate a throwaway SESSION_AUTH_KEY when it is not set.
// Sessions are kept in Redis when REDIS_URL is set, cookies otherwise.
func defaultSessionStore(env roadtrip.Environment, l logger.Logger) (session.SessionStorer, error) {
	cfg := session.Config{
		AuthKey:     os.Getenv(SessionAuthKeyEnvVar),
		EncryptKey:  os.Getenv(SessionEncryptKeyEnvVar),
		Env:         env,
		SessionName: roadtrip.EnvVarOrString(sessionNameEnvVar, defaultSessionName),
	}

	if cfg.AuthKey == "" && env.CanUseServiceStub() {
		l.Warn("no "+SessionAuthKeyEnvVar+" set, sessions will not survive a restart", nil)
		cfg.AuthKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	args := []session.ServiceOpt{
		session.WithMaxAge(roadtrip.EnvVarOrInt(sessionMaxAgeEnvVar, defaultSessionMaxAge)),
	}

	if raw := os.Getenv(redisURLEnvVar); raw != "" {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s", roadtrip.ErrBadConfig, redisURLEnvVar, err)
		}

		args = append(args, session.WithRedis(opts.Addr, roadtrip.EnvVarOrString(redisPassEnvVar, opts.Password)))
	} else {
		args = append(args, session.WithCookie())
	}

	return session.NewStoreService(cfg, args...)
}

// defaultIdempotencyCache keeps responses to idempotent trip creations in Redis when REDIS_URL is set,
// in memory otherwise.
func defaultIdempotencyCache() (middleware.IdempotencyCacher, error) {
	raw := os.Getenv(redisURLEnvVar)
	if raw == "" {
		return middleware.NewIdemResMap(), nil
	}

	return middleware.NewRedisCacheFromURL(raw, os.Getenv(redisPassEnvVar))
}

// defaultRouter constructs the [*router.Router] serving h's routes and the static client.
func defaultRouter(
	env roadtrip.Environment,
	h *handler.Handler,
	sessions session.SessionStorer,
	l logger.Logger,
) *router.Router {
	rt := router.New(env, h.LandingURL())
	rt.OnEveryRequest(
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.InjectSession(sessions),
		middleware.CurrentUser(),
	)

	rt.HandleRoutes(h.Routes())

	root := roadtrip.EnvVarOrString(staticRootEnvVar, defaultStaticRoot)
	rt.Static("/json/", filepath.Join(root, "json"))
	rt.Static("/app/json/", filepath.Join(root, "app", "json"))
	rt.Static("/images/", filepath.Join(root, "img"))
	rt.Static("/", filepath.Join(root, "dist", "road-trip"))

	rt.Use(
		middleware.CORS(),
		middleware.ForceHTTPS(env),
		middleware.RateLimit(middleware.NewVisitors()),
	)

	return rt
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := roadtrip.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         os.Getenv(hostEnvVar) + port,
		IdleTimeout:  roadtrip.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  roadtrip.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: roadtrip.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
