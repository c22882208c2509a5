package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/middleware"
)

func TestRequestID(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	var id string

	// Act
	middleware.RequestID()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		id = roadtrip.RequestID(rx.Context())
	})).ServeHTTP(w, r)

	// Assert
	require.NotZero(t, id)
	require.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))
}
