package handler

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/auth"
	"github.com/xy-planning-network/roadtrip/http/resp"
)

// callbackParams are the query params an OAuth provider redirects back with.
type callbackParams struct {
	State string `schema:"state" validate:"required"`
	Code  string `schema:"code"`
	Error string `schema:"error"`
}

// oauthStateKey holds, in the session, the state the last login sent the provider.
const oauthStateKey = "roadtrip-oauth-state"

// login redirects to the provider's consent URL,
// remembering in the session the state it carries.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	s, err := h.responder.Session(r.Context())
	if err != nil {
		h.failLogin(w, r, err)
		return
	}

	loginURL, err := h.auth.LoginURL()
	if err != nil {
		h.failLogin(w, r, err)
		return
	}

	u, err := url.Parse(loginURL)
	if err != nil {
		h.failLogin(w, r, fmt.Errorf("%w: login URL: %s", roadtrip.ErrUnexpected, err))
		return
	}

	if err := s.Set(w, r, oauthStateKey, u.Query().Get("state")); err != nil {
		h.failLogin(w, r, err)
		return
	}

	h.responder.Redirect(w, r, resp.Url(loginURL))
}

// callback completes the OAuth handshake, registering the user in the session.
// Any failure along the way sends the user to the landing URL without a session.
//
// The state the provider returns must be the one login stored in this session,
// and it is only accepted once.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	s, err := h.responder.Session(r.Context())
	if err != nil {
		h.failLogin(w, r, err)
		return
	}

	expected, _ := s.Get(oauthStateKey).(string)
	if err := s.Unset(w, r, oauthStateKey); err != nil {
		h.failLogin(w, r, err)
		return
	}

	var params callbackParams
	if err := h.parser.ParseQueryParams(r.URL.Query(), &params); err != nil {
		h.failLogin(w, r, err)
		return
	}

	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(params.State)) != 1 {
		h.failLogin(w, r, fmt.Errorf("%w: not issued to this session", auth.ErrBadState))
		return
	}

	if params.Error != "" {
		h.failLogin(w, r, fmt.Errorf("%w: %s", auth.ErrProvider, params.Error))
		return
	}

	u, err := h.auth.Authenticate(r.Context(), params.State, params.Code)
	if err != nil {
		h.failLogin(w, r, err)
		return
	}

	if err := s.RegisterUser(w, r, u); err != nil {
		h.failLogin(w, r, err)
		return
	}

	h.responder.Redirect(w, r, resp.Url(h.postLoginURL), resp.User(u))
}

// logout removes the user from the session and sends them to the landing URL.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	s, err := h.responder.Session(r.Context())
	if err == nil {
		if err := s.DeregisterUser(w, r); err != nil {
			h.logger.Warn(err.Error(), nil)
		}
	}

	h.responder.Redirect(w, r, resp.Url(h.landingURL))
}

// failLogin logs err and redirects to the landing URL.
func (h *Handler) failLogin(w http.ResponseWriter, r *http.Request, err error) {
	h.responder.Redirect(w, r, resp.Url(h.landingURL), resp.Code(http.StatusFound), resp.Err(err))
}
