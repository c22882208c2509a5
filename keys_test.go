package roadtrip_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
)

func TestIsTestRoute(t *testing.T) {
	for _, tc := range []struct {
		name string
		ctx  context.Context
		want bool
	}{
		{"Zero-Value", context.Background(), false},
		{"Wrong-Type", context.WithValue(context.Background(), roadtrip.TestRouteKey, "true"), false},
		{"False", context.WithValue(context.Background(), roadtrip.TestRouteKey, false), false},
		{"True", context.WithValue(context.Background(), roadtrip.TestRouteKey, true), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, roadtrip.IsTestRoute(tc.ctx))
		})
	}
}

func TestUserFromContext(t *testing.T) {
	// Arrange
	ctx := context.Background()

	// Act
	_, ok := roadtrip.UserFromContext(ctx)

	// Assert
	require.False(t, ok)

	// Arrange
	ctx = roadtrip.NewUserContext(ctx, roadtrip.User{})

	// Act
	_, ok = roadtrip.UserFromContext(ctx)

	// Assert
	require.False(t, ok)

	// Arrange
	expected := roadtrip.User{ID: "1234", DisplayName: "Ada Lovelace"}
	ctx = roadtrip.NewUserContext(ctx, expected)

	// Act
	actual, ok := roadtrip.UserFromContext(ctx)

	// Assert
	require.True(t, ok)
	require.Equal(t, expected, actual)
}
