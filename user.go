package roadtrip

import "context"

// A User is the identity a session carries once the OAuth handshake completes.
//
// ID is the identifier the OAuth provider assigns;
// it is the value trips are owned by.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

// Exists asserts whether the User was populated by an OAuth provider.
func (u User) Exists() bool { return u.ID != "" }

// GetID implements logger.LogUser.
func (u User) GetID() string { return u.ID }

// GetDisplayName implements logger.LogUser.
func (u User) GetDisplayName() string { return u.DisplayName }

// NewUserContext stashes u in ctx under CurrentUserKey.
func NewUserContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, CurrentUserKey, u)
}

// UserFromContext retrieves the User stashed in ctx by NewUserContext.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(CurrentUserKey).(User)
	if !ok || !u.Exists() {
		return User{}, false
	}

	return u, true
}
