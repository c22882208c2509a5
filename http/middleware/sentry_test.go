package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/middleware"
)

func TestReportPanic(t *testing.T) {
	for _, env := range []roadtrip.Environment{roadtrip.Development, roadtrip.Production} {
		t.Run(env.String(), func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			h := middleware.ReportPanic(env)(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				panic("boom")
			}))

			// Act + Assert
			require.NotPanics(t, func() { h.ServeHTTP(w, r) })
			require.Equal(t, http.StatusInternalServerError, w.Code)
		})
	}
}
