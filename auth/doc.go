/*
Package auth authenticates users through an OAuth handshake with Google.

# Handshake

[Service.LoginURL] builds the consent URL, asking for the profile and email scopes.
Its state parameter is a short-lived JWT signed with the application's key,
so the callback can tell a handshake it started from a forged one without keeping any server-side state.

[Service.Authenticate] verifies that state, exchanges the authorization code for a token
and fetches the user's profile from the userinfo API.

# Stub

[Stub] stands in for Google in development and testing environments.
*/
package auth
