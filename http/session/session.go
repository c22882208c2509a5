package session

import (
	"fmt"
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/roadtrip"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey         = "roadtrip-session-gorilla" // used by Service
	userIDKey          = sessionKey + "-user-id"    // used by Session
	userDisplayNameKey = sessionKey + "-user-name"  // used by Session
	userEmailKey       = sessionKey + "-user-email" // used by Session
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
	Unset(w http.ResponseWriter, r *http.Request, key string) error
}

// The UserSessionable wraps methods for adding, removing, and retrieving
// the authenticated user of a session.
type UserSessionable interface {
	DeregisterUser(w http.ResponseWriter, r *http.Request) error
	RegisterUser(w http.ResponseWriter, r *http.Request, u roadtrip.User) error
	User() (roadtrip.User, error)
}

// The RoadtripSessionable composes session's major interfaces.
type RoadtripSessionable interface {
	Sessionable
	UserSessionable
}

// A Session provides all functionality for managing a fully featured session.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session as an implementation of RoadtripSessionable
// from a *gorilla.Session.
func NewSession(g *gorilla.Session) RoadtripSessionable { return Session{s: g} }

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// DeregisterUser removes the User from the session.
func (s Session) DeregisterUser(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, userIDKey)
	delete(s.s.Values, userDisplayNameKey)
	delete(s.s.Values, userEmailKey)
	return s.Save(w, r)
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// RegisterUser stores who the user is in the session.
//
// Only a User that exists can be registered.
func (s Session) RegisterUser(w http.ResponseWriter, r *http.Request, u roadtrip.User) error {
	if !u.Exists() {
		return fmt.Errorf("%w: user has no ID", ErrNotValid)
	}

	s.s.Values[userIDKey] = u.ID
	s.s.Values[userDisplayNameKey] = u.DisplayName
	s.s.Values[userEmailKey] = u.Email
	return s.Save(w, r)
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// Unset removes the value stored under key from the session.
func (s Session) Unset(w http.ResponseWriter, r *http.Request, key string) error {
	delete(s.s.Values, key)
	return s.Save(w, r)
}

// User gets the authenticated user out of the session.
// A user should be present in a session if the user successfully completed the OAuth handshake.
// If no user can be found, ErrNoUser is returned.
// This ought to only happen when a user is going through the handshake or hitting unauthenticated routes.
//
// If the values stored in the session are not strings, ErrNotValid is returned and represents a programming error.
func (s Session) User() (roadtrip.User, error) {
	raw, ok := s.s.Values[userIDKey]
	if !ok {
		return roadtrip.User{}, ErrNoUser
	}

	id, ok := raw.(string)
	if !ok || id == "" {
		return roadtrip.User{}, ErrNotValid
	}

	name, _ := s.s.Values[userDisplayNameKey].(string)
	email, _ := s.s.Values[userEmailKey].(string)

	return roadtrip.User{ID: id, DisplayName: name, Email: email}, nil
}
