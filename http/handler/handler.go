package handler

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/auth"
	"github.com/xy-planning-network/roadtrip/docstore"
	"github.com/xy-planning-network/roadtrip/http/middleware"
	"github.com/xy-planning-network/roadtrip/http/req"
	"github.com/xy-planning-network/roadtrip/http/resp"
	"github.com/xy-planning-network/roadtrip/http/router"
	"github.com/xy-planning-network/roadtrip/logger"
)

const (
	defaultLandingURL   = "/"
	defaultPostLoginURL = "/#/trip"
)

// A Handler serves roadtrip's HTTP surface:
// the OAuth handshake, trips, and the stops embedded in them.
//
// Every trip and stop handler is a pass-through to the docstore.Store.
type Handler struct {
	auth         auth.AuthService
	idem         middleware.IdempotencyCacher
	landingURL   string
	logger       logger.Logger
	parser       *req.Parser
	postLoginURL string
	responder    *resp.Responder
	store        docstore.Store
}

// New constructs a *Handler backed by store and authenticating users with as.
func New(store docstore.Store, as auth.AuthService, opts ...Opt) *Handler {
	h := &Handler{
		auth:         as,
		landingURL:   defaultLandingURL,
		parser:       req.NewParser(),
		postLoginURL: defaultPostLoginURL,
		store:        store,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.logger == nil {
		h.logger = logger.New()
	}

	if h.responder == nil {
		h.responder = resp.NewResponder(resp.WithLogger(h.logger), resp.WithRootUrl(h.landingURL))
	}

	return h
}

// LandingURL is where unauthenticated requests and failed logins are sent.
func (h *Handler) LandingURL() string { return h.landingURL }

// Routes lists every route the Handler serves.
//
// Routes flagged Mirror are also reachable without authentication under /app/test.
func (h *Handler) Routes() []router.Route {
	return []router.Route{
		{Path: "/healthz", Method: http.MethodGet, Handler: h.health},
		{Path: "/auth/google", Method: http.MethodGet, Handler: h.login},
		{Path: "/auth/google/callback", Method: http.MethodGet, Handler: h.callback},
		{Path: "/auth/logout", Method: http.MethodGet, Handler: h.logout},

		{Path: "/app/trip/", Method: http.MethodGet, Handler: h.listTrips, RequiresAuth: true, Mirror: true},
		{
			Path:         "/app/trip/",
			Method:       http.MethodPost,
			Handler:      h.createTrip,
			RequiresAuth: true,
			Mirror:       true,
			Middlewares:  []middleware.Adapter{middleware.Idempotent(h.idem, nil)},
		},
		{Path: "/app/trip/{tripId}", Method: http.MethodGet, Handler: h.getTrip, RequiresAuth: true, Mirror: true},
		{Path: "/app/trip/{tripId}/count", Method: http.MethodGet, Handler: h.countStops, RequiresAuth: true},
		{Path: "/app/trip/{tripId}/stop", Method: http.MethodGet, Handler: h.listStops, RequiresAuth: true},
		{Path: "/app/trip/{tripId}/stop/{stopId}", Method: http.MethodGet, Handler: h.getStop, RequiresAuth: true, Mirror: true},
		{Path: "/app/trip/delete/{tripId}", Method: http.MethodDelete, Handler: h.deleteTrip, RequiresAuth: true, Mirror: true},
		{Path: "/app/tripcount", Method: http.MethodGet, Handler: h.countTrips, RequiresAuth: true},
		{Path: "/app/user/name", Method: http.MethodGet, Handler: h.userName, RequiresAuth: true},
	}
}

// health reports the server is up.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.responder.Json(w, r, resp.Data(map[string]string{"status": "ok"}))
}

// err responds with err as JSON.
// Malformed or invalid input is answered with 400; everything else with 500.
func (h *Handler) err(w http.ResponseWriter, r *http.Request, err error) {
	var opts []resp.Fn
	if errors.Is(err, roadtrip.ErrBadFormat) || errors.Is(err, roadtrip.ErrNotValid) {
		opts = append(opts, resp.Code(http.StatusBadRequest))

		var verrs req.ValidationErrors
		if errors.As(err, &verrs) {
			opts = append(opts, resp.Data(verrs))
		}
	}

	h.responder.Err(w, r, err, opts...)
}
