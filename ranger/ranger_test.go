package ranger_test

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/docstore/memory"
	"github.com/xy-planning-network/roadtrip/logger"
	"github.com/xy-planning-network/roadtrip/ranger"
)

// clearEnv unsets every env var ranger reads that would reach outside the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BASE_URL",
		"DATABASE_URL",
		"DOCUMENT_STORE",
		"ENVIRONMENT",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"JWT_KEY",
		"REDIS_URL",
		"SENTRY_DSN",
		"SESSION_AUTH_KEY",
		"SESSION_ENCRYPTION_KEY",
		"STATIC_ROOT",
	} {
		t.Setenv(key, "")
	}
}

func quietLogger() logger.Logger {
	return logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.Nil(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestNewTesting(t *testing.T) {
	// Arrange
	clearEnv(t)

	rng, err := ranger.New(ranger.WithEnv(roadtrip.Testing), ranger.WithLogger(quietLogger()))
	require.Nil(t, err)
	require.IsType(t, new(memory.Store), rng.EmitStore())
	require.Equal(t, roadtrip.Testing, rng.EmitEnv())

	srv := httptest.NewServer(rng)
	defer srv.Close()

	anon := newClient(t)
	c := newClient(t)

	// Act
	res, err := anon.Get(srv.URL + "/app/trip/")

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusFound, res.StatusCode)
	require.Equal(t, "/", res.Header.Get("Location"))
	require.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	// Act
	res, err = c.Get(srv.URL + "/auth/google")

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusFound, res.StatusCode)

	callback, err := url.Parse(res.Header.Get("Location"))
	require.Nil(t, err)
	require.Equal(t, "/auth/google/callback", callback.Path)

	// Act
	res, err = c.Get(srv.URL + callback.RequestURI())

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusFound, res.StatusCode)
	require.Equal(t, "/#/trip", res.Header.Get("Location"))

	// Act
	res, err = c.Get(srv.URL + "/app/user/name")

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var name map[string]string
	require.Nil(t, json.NewDecoder(res.Body).Decode(&name))
	require.NotEmpty(t, name["username"])

	// Act
	res, err = c.Post(srv.URL+"/app/trip/", "application/json", strings.NewReader(`{"tripId":"t1","userId":"stub-user"}`))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Act
	res, err = c.Get(srv.URL + "/app/tripcount")

	// Assert
	require.Nil(t, err)
	b, err := io.ReadAll(res.Body)
	require.Nil(t, err)
	require.Equal(t, "1\n", string(b))

	// Act
	res, err = anon.Get(srv.URL + "/app/test/trip/t1")

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var trip map[string]any
	require.Nil(t, json.NewDecoder(res.Body).Decode(&trip))
	require.Equal(t, "t1", trip["tripId"])
}

func TestNewWithStore(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("DOCUMENT_STORE", "bogus")
	store := memory.New()

	// Act
	rng, err := ranger.New(
		ranger.WithEnv(roadtrip.Testing),
		ranger.WithLogger(quietLogger()),
		ranger.WithStore(store),
	)

	// Assert
	require.Nil(t, err)
	require.Same(t, store, rng.EmitStore())
}

func TestNewBadConfig(t *testing.T) {
	tcs := []struct {
		name string
		env  roadtrip.Environment
		vars map[string]string
	}{
		{"Unknown-Store", roadtrip.Testing, map[string]string{"DOCUMENT_STORE": "bogus"}},
		{"Mongo-Without-URI", roadtrip.Testing, map[string]string{"DOCUMENT_STORE": "mongo"}},
		{"Bad-Redis-URL", roadtrip.Testing, map[string]string{"REDIS_URL": "bogus"}},
		{"Production-Without-OAuth", roadtrip.Production, map[string]string{"DOCUMENT_STORE": "memory", "SESSION_AUTH_KEY": "abcd"}},
		{
			"Production-Without-Session-Key",
			roadtrip.Production,
			map[string]string{
				"DOCUMENT_STORE":       "memory",
				"GOOGLE_CLIENT_ID":     "id",
				"GOOGLE_CLIENT_SECRET": "secret",
				"JWT_KEY":              "key",
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			clearEnv(t)
			for k, v := range tc.vars {
				t.Setenv(k, v)
			}

			// Act
			_, err := ranger.New(ranger.WithEnv(tc.env), ranger.WithLogger(quietLogger()))

			// Assert
			require.ErrorIs(t, err, roadtrip.ErrBadConfig)
		})
	}

	// Act
	_, err := ranger.New(ranger.WithEnv("NOWHERE"))

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrBadConfig)
}

func TestGuide(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("PORT", "0")

	rng, err := ranger.New(ranger.WithEnv(roadtrip.Testing), ranger.WithLogger(quietLogger()))
	require.Nil(t, err)

	done := make(chan error, 1)

	// Act
	go func() { done <- rng.Guide() }()
	time.Sleep(50 * time.Millisecond)
	rng.Cancel()

	// Assert
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Guide did not return after Cancel")
	}
}

func TestNewPostgresConfig(t *testing.T) {
	t.Run("URL", func(t *testing.T) {
		// Arrange
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/roadtrip")

		// Act
		cfg := ranger.NewPostgresConfig(roadtrip.Production)

		// Assert
		require.Equal(t, "postgres://u:p@db:5432/roadtrip", cfg.URL)
		require.False(t, cfg.IsTestDB)
		require.True(t, cfg.Configured())
	})

	t.Run("Parts", func(t *testing.T) {
		// Arrange
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DATABASE_HOST", "")
		t.Setenv("DATABASE_PORT", "")
		t.Setenv("DATABASE_NAME", "roadtrip")

		// Act
		cfg := ranger.NewPostgresConfig(roadtrip.Staging)

		// Assert
		require.Equal(t, "localhost", cfg.Host)
		require.Equal(t, "5432", cfg.Port)
		require.Equal(t, "roadtrip", cfg.Name)
		require.Equal(t, "prefer", cfg.SSLMode)
	})

	t.Run("Testing-Unconfigured", func(t *testing.T) {
		// Arrange
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/roadtrip")
		t.Setenv("DATABASE_TEST_URL", "")
		t.Setenv("DATABASE_TEST_HOST", "")

		// Act
		cfg := ranger.NewPostgresConfig(roadtrip.Testing)

		// Assert
		require.True(t, cfg.IsTestDB)
		require.False(t, cfg.Configured())
	})

	t.Run("Testing", func(t *testing.T) {
		// Arrange
		t.Setenv("DATABASE_TEST_URL", "")
		t.Setenv("DATABASE_TEST_HOST", "localhost")
		t.Setenv("DATABASE_TEST_NAME", "roadtrip_test")

		// Act
		cfg := ranger.NewPostgresConfig(roadtrip.Testing)

		// Assert
		require.True(t, cfg.IsTestDB)
		require.True(t, cfg.Configured())
		require.Equal(t, "roadtrip_test", cfg.Name)
	})
}
