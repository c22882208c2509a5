package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/logger"
)

const logMaskVal = "xxxxxxx"

// maskedParams are query params whose values never reach the logs.
var maskedParams = []string{"code", "password", "state"}

// LogRequest logs the request's method, requested URL, originating IP address and request ID
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following query params:
// - code
// - password
// - state
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ls.Info(requestLine(r), &logger.LogContext{
				Data: map[string]any{"requestID": roadtrip.RequestID(r.Context())},
			})
			h.ServeHTTP(w, r)
		})
	}
}

// requestLine formats r as "[ip] METHOD /path?query".
func requestLine(r *http.Request) string {
	uri := r.URL.Path
	q := r.URL.Query()
	for _, p := range maskedParams {
		if q.Has(p) {
			q.Set(p, logMaskVal)
		}
	}

	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	strs := []string{r.Method, uri}
	if val, ok := r.Context().Value(roadtrip.IpAddrKey).(string); ok && val != "" {
		strs = append([]string{val}, strs...)
	}

	return strings.Join(strs, " ")
}
