package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/middleware"
)

const (
	appPrefix         = "/app"
	testPrefix        = "/app/test"
	staticMaxAge      = "max-age=2592000" // 30 days
	defaultLandingURL = "/"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// RequiresAuth places the Route behind [middleware.RequireAuthed].
//
// Mirror additionally registers the Route under the test prefix, e.g.,
// /app/trip/ is mirrored at /app/test/trip/.
// The mirror never requires authentication and marks its requests with [roadtrip.TestRouteKey].
type Route struct {
	Path         string
	Method       string
	Handler      http.HandlerFunc
	RequiresAuth bool
	Mirror       bool
	Middlewares  []middleware.Adapter
}

// Router routes requests for resources to their handlers and static assets.
type Router struct {
	Env           roadtrip.Environment
	everyReqStack []middleware.Adapter
	h             http.Handler
	landingURL    string
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
// Panics raised anywhere behind the Router are recovered once, by [middleware.ReportPanic].
//
// Requests denied by [middleware.RequireAuthed] are redirected to landingURL,
// or "/" if landingURL is empty.
func New(env roadtrip.Environment, landingURL string) *Router {
	if landingURL == "" {
		landingURL = defaultLandingURL
	}

	r := mux.NewRouter()
	return &Router{Env: env, h: middleware.ReportPanic(env)(r), landingURL: landingURL, r: r}
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(handler, r.everyReqStack...)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set and after the authentication check.
//
// A Route matches its path with or without a trailing slash.
// For the same path and method, the Route registered first wins.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		base := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares))
		base = append(base, r.everyReqStack...)
		base = append(base, middlewares...)

		handler := http.Handler(route.Handler)

		if route.Mirror {
			mws := append(base[:len(base):len(base)], markTestRoute)
			mws = append(mws, route.Middlewares...)
			r.handle(TestPath(route.Path), route.Method, middleware.Chain(handler, mws...))
		}

		// NOTE(dlk): the gate runs before Route.Middlewares so denied requests never reach them
		mws := base[:len(base):len(base)]
		if route.RequiresAuth {
			mws = append(mws, middleware.RequireAuthed(r.landingURL))
		}
		mws = append(mws, route.Middlewares...)

		r.handle(route.Path, route.Method, middleware.Chain(handler, mws...))
	}
}

// handle registers handler at path and at path's trailing slash counterpart.
func (r *Router) handle(path, method string, handler http.Handler) {
	r.r.Handle(path, handler).Methods(method)

	switch {
	case path == "/":
	case strings.HasSuffix(path, "/"):
		r.r.Handle(strings.TrimSuffix(path, "/"), handler).Methods(method)
	default:
		r.r.Handle(path+"/", handler).Methods(method)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every Route registered afterwards.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.h.ServeHTTP(w, req)
}

// Static serves the files under dir for every request whose path begins with prefix,
// stripping prefix first.
//
// Register the broadest prefix, i.e., "/", last so narrower routes match first.
func (r *Router) Static(prefix, dir string) {
	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(http.Dir(dir))),
		append(r.everyReqStack[:len(r.everyReqStack):len(r.everyReqStack)], cacheControlMiddleware())...,
	))
}

// Use wraps the whole [*Router] in the middlewares,
// so they run on every request, matched or not, before routing happens
// and outside of panic recovery.
func (r *Router) Use(middlewares ...middleware.Adapter) {
	r.h = middleware.Chain(r.h, middlewares...)
}

// TestPath maps path to its unauthenticated mirror, e.g.,
// /app/trip/{tripId} becomes /app/test/trip/{tripId}.
func TestPath(path string) string {
	return testPrefix + strings.TrimPrefix(path, appPrefix)
}

// markTestRoute stashes roadtrip.TestRouteKey in the request context.
func markTestRoute(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), roadtrip.TestRouteKey, true)))
	})
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", staticMaxAge)
			handler.ServeHTTP(w, r)
		})
	}
}
