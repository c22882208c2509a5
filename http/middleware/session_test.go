package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/middleware"
	"github.com/xy-planning-network/roadtrip/http/session"
)

func TestInjectSession(t *testing.T) {
	// Arrange + Act
	actual := middleware.InjectSession(nil)

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))

	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	var called bool

	// Act
	middleware.InjectSession(session.NewStub(roadtrip.User{}))(
		http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
			called = true
			val, ok := rx.Context().Value(roadtrip.SessionKey).(session.Session)
			require.True(t, ok)
			require.NotNil(t, val)
		}),
	).ServeHTTP(w, r)

	// Assert
	require.True(t, called)
}
