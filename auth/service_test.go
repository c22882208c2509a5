package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/auth"
	"golang.org/x/oauth2"
)

const testKey = "such-secret"

func newTestService(t *testing.T, provider *httptest.Server) *auth.Service {
	t.Helper()

	cfg := auth.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3000/auth/google/callback",
		JWTKey:       testKey,
	}

	if provider != nil {
		cfg.Endpoint = oauth2.Endpoint{
			AuthURL:   provider.URL + "/auth",
			TokenURL:  provider.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}
		cfg.APIEndpoint = provider.URL + "/"
	}

	s, err := auth.NewService(cfg)
	require.Nil(t, err)

	return s
}

func newProvider(t *testing.T, userinfo map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.Nil(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userinfo)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestNewService(t *testing.T) {
	_, err := auth.NewService(auth.Config{ClientID: "client", ClientSecret: "secret", JWTKey: testKey})
	require.ErrorIs(t, err, roadtrip.ErrBadConfig)

	s, err := auth.NewService(auth.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:3000/auth/google/callback",
		JWTKey:       testKey,
	})
	require.Nil(t, err)
	require.NotNil(t, s)
}

func TestServiceLoginURL(t *testing.T) {
	// Arrange
	s := newTestService(t, nil)

	// Act
	actual, err := s.LoginURL()

	// Assert
	require.Nil(t, err)

	u, err := url.Parse(actual)
	require.Nil(t, err)
	require.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	require.Equal(t, "client", q.Get("client_id"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "http://localhost:3000/auth/google/callback", q.Get("redirect_uri"))
	require.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/userinfo.profile")
	require.Contains(t, q.Get("scope"), "https://www.googleapis.com/auth/userinfo.email")
	require.Nil(t, s.VerifyState(q.Get("state")))
}

func TestServiceVerifyState(t *testing.T) {
	s := newTestService(t, nil)

	sign := func(key string, claims jwt.Claims, method jwt.SigningMethod) string {
		state, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
		require.Nil(t, err)
		return state
	}

	valid, err := s.NewState()
	require.Nil(t, err)

	for _, tc := range []struct {
		name  string
		state string
		err   error
	}{
		{"Valid", valid, nil},
		{"Empty", "", auth.ErrBadState},
		{"Garbage", "such-state", auth.ErrBadState},
		{
			"Wrong-Key",
			sign("other-key", jwt.RegisteredClaims{
				Subject:   "oauth-state",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			}, jwt.SigningMethodHS256),
			auth.ErrBadState,
		},
		{
			"Expired",
			sign(testKey, jwt.RegisteredClaims{
				Subject:   "oauth-state",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}, jwt.SigningMethodHS256),
			auth.ErrBadState,
		},
		{
			"Wrong-Method",
			sign(testKey, jwt.RegisteredClaims{
				Subject:   "oauth-state",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			}, jwt.SigningMethodHS512),
			auth.ErrBadState,
		},
		{
			"Wrong-Subject",
			sign(testKey, jwt.RegisteredClaims{
				Subject:   "session",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			}, jwt.SigningMethodHS256),
			auth.ErrBadState,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := s.VerifyState(tc.state)
			require.ErrorIs(t, err, tc.err)
			if tc.err != nil {
				require.ErrorIs(t, err, roadtrip.ErrNotValid)
			}
		})
	}
}

func TestServiceAuthenticate(t *testing.T) {
	// Arrange
	provider := newProvider(t, map[string]any{
		"id":         "1234",
		"name":       "Ada Lovelace",
		"given_name": "Ada",
		"email":      "ada@example.com",
	})
	s := newTestService(t, provider)
	state, err := s.NewState()
	require.Nil(t, err)

	// Act
	actual, err := s.Authenticate(context.Background(), state, "good-code")

	// Assert
	require.Nil(t, err)
	require.Equal(t, roadtrip.User{ID: "1234", DisplayName: "Ada Lovelace", Email: "ada@example.com"}, actual)
}

func TestServiceAuthenticateFailures(t *testing.T) {
	provider := newProvider(t, map[string]any{"name": "Nobody"})
	s := newTestService(t, provider)
	state, err := s.NewState()
	require.Nil(t, err)

	for _, tc := range []struct {
		name  string
		state string
		code  string
		err   error
	}{
		{"Bad-State", "forged", "good-code", auth.ErrBadState},
		{"No-Code", state, "", auth.ErrNoCode},
		{"Bad-Code", state, "bad-code", auth.ErrProvider},
		{"No-ID", state, "good-code", auth.ErrProvider},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := s.Authenticate(context.Background(), tc.state, tc.code)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.False(t, actual.Exists())
		})
	}
}
