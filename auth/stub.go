package auth

import (
	"context"
	"net/url"

	"github.com/xy-planning-network/roadtrip"
)

const stubState = "stub"

var _ AuthService = Stub{}

// A Stub skips the provider altogether:
// its LoginURL points straight back at the callback,
// and Authenticate hands back User.
//
// Stub is only fit for environments that can use service stubs.
type Stub struct {
	CallbackURL string
	User        roadtrip.User
}

// NewStub constructs a Stub logging everyone in as u.
func NewStub(callbackURL string, u roadtrip.User) Stub {
	return Stub{CallbackURL: callbackURL, User: u}
}

// LoginURL implements AuthService.
func (s Stub) LoginURL() (string, error) {
	u, err := url.Parse(s.CallbackURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("state", stubState)
	q.Set("code", stubState)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Authenticate implements AuthService.
func (s Stub) Authenticate(_ context.Context, state, code string) (roadtrip.User, error) {
	if state != stubState {
		return roadtrip.User{}, ErrBadState
	}

	if code == "" {
		return roadtrip.User{}, ErrNoCode
	}

	return s.User, nil
}
