/*
Package roadtrip holds the types shared across the roadtrip server:
the documents trips and stops are stored as, the User a session authenticates,
the Environment the server runs in, and the sentinel errors packages wrap.

The server itself is assembled by package ranger
and its HTTP surface is defined by package handler.
*/
package roadtrip
