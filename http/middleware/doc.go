/*
The middleware package defines what a middleware is in roadtrip and a set of basic middlewares.

The available middlewares are:
- CORS
- CurrentUser
- ForceHTTPS
- Idempotent
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID
- RequireAuthed

The router recovers panics with ReportPanic on its own,
applies the global chain to every route and RequireAuthed to protected routes only:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.CORS(),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
		middleware.CurrentUser(),
	}
*/
package middleware
