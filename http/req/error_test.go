package req_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/req"
)

func TestValidationErrorsError(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act
	actual := v.Error()

	// Assert
	require.Zero(t, actual)

	// Arrange
	v = append(
		v,
		req.ValidationError{Field: "tripId", Rule: "required"},
		req.ValidationError{Field: "days", Rule: "gt=0", Got: 0},
	)

	// Act
	actual = v.Error()

	// Assert
	require.Equal(t, "tripId: required; days: gt=0, got 0", actual)
}

func TestValidationErrorsMarshalJSON(t *testing.T) {
	// Arrange
	v := req.ValidationErrors{
		{Field: "tripId", Rule: "required"},
		{Field: "days", Rule: "gt=0", Got: 0},
	}

	// Act
	actual, err := json.Marshal(v)

	// Assert
	require.Nil(t, err)
	require.JSONEq(t, `[{"field":"tripId","rule":"required"},{"field":"days","rule":"gt=0","got":0}]`, string(actual))
}

func TestValidationErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, req.ValidationErrors{}, roadtrip.ErrNotValid)
}
