package roadtrip

import "context"

type Key string

const (
	// CurrentUserKey stashes the User authenticated for a session.
	CurrentUserKey Key = "CurrentUserKey"

	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"

	// TestRouteKey marks a request routed through the unauthenticated test mirror of a route.
	TestRouteKey Key = "TestRouteKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "roadtrip context key: " + string(k)
}

// IsTestRoute asserts whether the request owning ctx reached its handler
// through the unauthenticated test mirror of a route.
func IsTestRoute(ctx context.Context) bool {
	val, _ := ctx.Value(TestRouteKey).(bool)
	return val
}

// RequestID retrieves the request ID stashed in ctx, or "".
func RequestID(ctx context.Context) string {
	val, _ := ctx.Value(RequestIDKey).(string)
	return val
}
