package middleware

import (
	"log"
	"net/http"

	"github.com/getsentry/sentry-go/http"
	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/roadtrip"
)

// ReportPanic recovers panics raised by the handler it wraps and responds with 500.
//
// Outside of development, panics are first reported to Sentry via sentryhttp.
// In development, the stack trace is printed instead.
func ReportPanic(env roadtrip.Environment) Adapter {
	return func(handler http.Handler) http.Handler {
		if env.IsDevelopment() {
			return handlers.RecoveryHandler(
				handlers.PrintRecoveryStack(true),
				handlers.RecoveryLogger(log.Default()),
			)(handler)
		}

		sh := sentryhttp.New(sentryhttp.Options{
			Repanic:         true,
			WaitForDelivery: true,
		})

		return handlers.RecoveryHandler(handlers.RecoveryLogger(log.Default()))(sh.Handle(handler))
	}
}
