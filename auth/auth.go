package auth

import (
	"context"

	"github.com/xy-planning-network/roadtrip"
)

// An AuthService walks a user through an OAuth handshake with a provider.
type AuthService interface {
	// LoginURL builds the provider's consent URL to redirect a user to.
	LoginURL() (string, error)

	// Authenticate completes the handshake the provider's callback carries state and code for,
	// returning who the provider says the user is.
	Authenticate(ctx context.Context, state, code string) (roadtrip.User, error)
}
