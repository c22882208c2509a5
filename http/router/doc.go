/*
Package router defines how roadtrip's HTTP server routes requests.

A [*Router] wraps [mux.Router] and leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An [http.HandlerFunc] is the function called when a request matches a Route.
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

Small errors can lead to registering a route incorrectly,
thereby unintentionally exposing a resource.
Thus, a [Route] declares whether it requires authentication and whether it has an unauthenticated test mirror,
and the [*Router] derives both registrations from that one declaration.
*/
package router
