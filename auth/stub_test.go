package auth_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/auth"
)

func TestStub(t *testing.T) {
	// Arrange
	expected := roadtrip.User{ID: "dev", DisplayName: "Developer"}
	s := auth.NewStub("http://localhost:3000/auth/google/callback", expected)

	// Act
	login, err := s.LoginURL()

	// Assert
	require.Nil(t, err)

	u, err := url.Parse(login)
	require.Nil(t, err)
	require.Equal(t, "/auth/google/callback", u.Path)

	// Act
	actual, err := s.Authenticate(context.Background(), u.Query().Get("state"), u.Query().Get("code"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, expected, actual)

	// Act
	_, err = s.Authenticate(context.Background(), "forged", "code")

	// Assert
	require.ErrorIs(t, err, auth.ErrBadState)

	// Act
	_, err = s.Authenticate(context.Background(), "stub", "")

	// Assert
	require.ErrorIs(t, err, auth.ErrNoCode)
}
